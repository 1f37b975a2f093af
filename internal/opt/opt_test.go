package opt

import (
	"testing"
)

func TestCacheLineSize(t *testing.T) {
	c := CacheLineSize_
	if c < 8 || c&(c-1) != 0 {
		t.Fatalf("CacheLineSize_ = %d, want a power of two >= 8", c)
	}
}
