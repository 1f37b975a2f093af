//go:build addrwait_cachelinesize_128

package opt

// CacheLineSize_ is forced to 128 bytes.
// Use: go build -tags=addrwait_cachelinesize_128
const CacheLineSize_ uintptr = 128
