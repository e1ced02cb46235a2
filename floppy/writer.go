package floppy

import (
	"bytes"
	"encoding/binary"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/gokrazy/floppy/fat12"
)

type paddingWriter struct {
	w     io.Writer
	count int
	padTo int
	fill  byte
}

func (pw *paddingWriter) Write(p []byte) (n int, err error) {
	pw.count += int(len(p))
	return pw.w.Write(p)
}

func (pw *paddingWriter) Flush() error {
	if pw.count%pw.padTo == 0 {
		return nil
	}
	remainder := pw.padTo - (pw.count % pw.padTo)
	pw.count += remainder
	_, err := pw.w.Write(bytes.Repeat([]byte{pw.fill}, remainder))
	return err
}

// file is the one root directory entry of the image.
type file struct {
	name    string
	ext     string
	modTime time.Time
	size    uint32
}

var empty = [8]byte{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}

func (f *file) Name() [8]byte {
	var result [8]byte
	copy(result[:], empty[:])
	copy(result[:], []byte(f.name))
	return result
}

func (f *file) Ext() [3]byte {
	var result [3]byte
	copy(result[:], empty[:3])
	copy(result[:], []byte(f.ext))
	return result
}

func (f *file) Attr() uint8 {
	return 0x1 // read-only
}

func (f *file) Time() uint16 {
	return uint16(f.modTime.Hour())<<11 |
		uint16(f.modTime.Minute())<<5 |
		uint16(f.modTime.Second()/2)
}

func (f *file) Date() uint16 {
	return uint16(f.modTime.Year()-1980)<<9 |
		uint16(f.modTime.Month())<<5 |
		uint16(f.modTime.Day())
}

// shortName splits filename into the upper-cased 8.3 name and extension.
func shortName(filename string) (name, ext string, _ error) {
	parts := strings.Split(strings.ToUpper(filename)+".", ".")
	name, ext = parts[0], parts[1]
	if len(parts) > 3 {
		return "", "", errors.Errorf("file name %q contains more than one dot", filename)
	}
	if name == "" || len(name) > 8 || len(ext) > 3 {
		return "", "", errors.Errorf("file name %q does not fit 8.3", filename)
	}
	for _, r := range name + ext {
		if r <= ' ' || r > '~' || strings.ContainsRune(`"*+,/:;<=>?[\]|`, r) {
			return "", "", errors.Errorf("file name %q contains invalid character %q", filename, r)
		}
	}
	return name, ext, nil
}

// Writer builds a floppy image holding a boot sector and a single file in
// the root directory, stored contiguously from the first data cluster.
type Writer struct {
	w io.Writer

	boot    [SectorSize]byte
	hasBoot bool

	file *file
	data bytes.Buffer

	padSectors int
	padFill    byte
}

// NewWriter returns a Writer which will write a floppy image to w once Flush
// is called.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// BootSector sets the boot sector code. code must start with a near jump
// (0xE9) and be at most SectorSize bytes long. The boot signature is stored
// at the end of the sector; if code covers it, it must already be present.
func (fw *Writer) BootSector(code []byte) error {
	if len(code) == 0 || code[0] != bootJump {
		return errors.Errorf("boot sector must start with a near jump (%#x)", bootJump)
	}
	if len(code) > SectorSize {
		return errors.Errorf("boot sector is %d bytes, at most %d allowed", len(code), SectorSize)
	}
	if len(code) > bootSignatureOffset && binary.LittleEndian.Uint16(code[bootSignatureOffset:]) != bootSignature {
		return errors.Errorf("boot sector covers the signature offset but lacks %#x", bootSignature)
	}
	fw.boot = [SectorSize]byte{}
	copy(fw.boot[:], code)
	binary.LittleEndian.PutUint16(fw.boot[bootSignatureOffset:], bootSignature)
	fw.hasBoot = true
	return nil
}

// File creates the root directory file with the specified name and modTime.
// The returned io.Writer stays valid until Flush.
func (fw *Writer) File(filename string, modTime time.Time) (io.Writer, error) {
	if fw.file != nil {
		return nil, errors.Errorf("cannot add %q: image already holds %s.%s", filename, fw.file.name, fw.file.ext)
	}
	name, ext, err := shortName(filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	fw.file = &file{
		name:    name,
		ext:     ext,
		modTime: modTime.UTC(),
	}
	return &fw.data, nil
}

// PadFile makes Flush extend the file to sectors sectors, filling the
// additional bytes with fill. The padding is part of the file.
func (fw *Writer) PadFile(sectors int, fill byte) {
	fw.padSectors = sectors
	fw.padFill = fill
}

func fullSectors(bytes int) int {
	sectors := bytes / SectorSize
	if bytes%SectorSize > 0 {
		sectors++
	}
	return sectors
}

func (fw *Writer) writeDirEntry(w io.Writer, f *file) error {
	for _, v := range []interface{}{
		f.Name(),
		f.Ext(),
		f.Attr(),
		[10]byte{}, // reserved
		f.Time(),
		f.Date(),
		uint16(fat12.FirstCluster), // file data starts at the first data cluster
		f.size,                     // file size in bytes
	} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the image. The Writer must not be used after calling Flush.
func (fw *Writer) Flush() error {
	if !fw.hasBoot {
		return errors.New("no boot sector set")
	}
	if fw.file == nil {
		return errors.New("no file added")
	}

	if pad := fw.padSectors*SectorSize - fw.data.Len(); pad > 0 {
		fw.data.Write(bytes.Repeat([]byte{fw.padFill}, pad))
	} else if pad < 0 {
		return errors.Errorf("%s.%s is %d bytes, exceeding the %d sectors to pad to", fw.file.name, fw.file.ext, fw.data.Len(), fw.padSectors)
	}
	if fw.data.Len() == 0 {
		return errors.Errorf("%s.%s is empty", fw.file.name, fw.file.ext)
	}
	clusters := fullSectors(fw.data.Len())
	if clusters > DataClusters {
		return errors.Errorf("%s.%s needs %d clusters, the data area holds %d", fw.file.name, fw.file.ext, clusters, DataClusters)
	}
	fw.file.size = uint32(fw.data.Len())

	fat, err := fat12.Encode(clusters)
	if err != nil {
		return err
	}

	img := &paddingWriter{w: fw.w, padTo: ImageSize}
	if _, err := img.Write(fw.boot[:]); err != nil {
		return err
	}
	for i := 0; i < NumFATs; i++ {
		if _, err := img.Write(fat); err != nil {
			return err
		}
	}

	rootDir := &paddingWriter{w: img, padTo: RootDirSectors * SectorSize}
	if err := fw.writeDirEntry(rootDir, fw.file); err != nil {
		return err
	}
	if err := rootDir.Flush(); err != nil {
		return err
	}

	// data area
	if _, err := img.Write(fw.data.Bytes()); err != nil {
		return err
	}
	return img.Flush()
}
