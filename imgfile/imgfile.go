// Package imgfile loads floppy images for validation.
package imgfile

import (
	"os"

	"github.com/pkg/errors"

	"github.com/gokrazy/floppy/floppy"
)

// Image is a read-only view of a floppy image file.
type Image struct {
	file *os.File
	data []byte
}

// Open opens the floppy image at path. path must name a regular file of
// floppy.ImageSize bytes; other sizes result in a *floppy.Violation.
func Open(path string) (*Image, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return nil, errors.Errorf("invalid file path: %s is not a regular file", path)
	}
	if v := floppy.SizeMismatch(st.Size()); v != nil {
		return nil, errors.Wrap(v, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := load(f, int(st.Size()))
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return &Image{file: f, data: data}, nil
}

// Bytes returns the image contents. The returned slice must not be modified
// and is only valid until Close.
func (i *Image) Bytes() []byte {
	return i.data
}

// Close releases the image contents and closes the underlying file.
func (i *Image) Close() error {
	if i.file == nil {
		return nil
	}
	err := unload(i.data)
	i.data = nil
	if cerr := i.file.Close(); err == nil {
		err = cerr
	}
	i.file = nil
	return err
}
