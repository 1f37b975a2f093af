//go:build addrwait_cachelinesize_64

package opt

// CacheLineSize_ is forced to 64 bytes.
// Use: go build -tags=addrwait_cachelinesize_64
const CacheLineSize_ uintptr = 64
