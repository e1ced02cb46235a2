//go:build unix

package imgfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// load maps the first size bytes of f into memory, read-only.
func load(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
}

func unload(data []byte) error {
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}
