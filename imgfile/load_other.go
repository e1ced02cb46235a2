//go:build !unix

package imgfile

import (
	"io"
	"os"
)

func load(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func unload(data []byte) error {
	return nil
}
