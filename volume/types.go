// volume/types.go
package volume

// Entry describes a mounted, block-device-backed filesystem eligible for
// benchmarking.
type Entry struct {
	MountPoint string
	Device     string
	Fstype     string
	FreeBytes  uint64
}
