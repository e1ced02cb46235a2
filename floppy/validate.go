package floppy

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Mode selects how much of the root directory and data area Validate
// checks.
type Mode int

const (
	// Strict requires the root directory to start with PayloadName,
	// PayloadSize bytes long, and the payload to end with PayloadFill.
	Strict Mode = iota

	// Lenient only requires a root directory entry to be present.
	Lenient
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode named s ("strict" or "lenient").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	}
	return 0, errors.Errorf("unknown validation mode %q (want strict or lenient)", s)
}

// Violation describes the first place at which an image deviates from the
// expected layout.
type Violation struct {
	// Offset is the byte offset of the checked value within the image.
	Offset int
	// Expected describes the value (or condition) which was expected.
	Expected string
	// Actual is the value found at Offset (the image length for size
	// mismatches).
	Actual uint64
	// Description names the check, e.g. "missing boot signature".
	Description string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: offset %#x: got %#x, want %s", v.Description, v.Offset, v.Actual, v.Expected)
}

// SizeMismatch returns the Violation for an image of size bytes, or nil if
// size is ImageSize.
func SizeMismatch(size int64) *Violation {
	if size == ImageSize {
		return nil
	}
	return &Violation{
		Offset:      0,
		Expected:    fmt.Sprintf("%#x bytes", ImageSize),
		Actual:      uint64(size),
		Description: "size mismatch",
	}
}

func expectByte(img []byte, off int, want byte, desc string) *Violation {
	if got := img[off]; got != want {
		return &Violation{off, fmt.Sprintf("0x%02x", want), uint64(got), desc}
	}
	return nil
}

func expectUint16(img []byte, off int, want uint16, desc string) *Violation {
	if got := binary.LittleEndian.Uint16(img[off:]); got != want {
		return &Violation{off, fmt.Sprintf("0x%04x", want), uint64(got), desc}
	}
	return nil
}

func expectUint32(img []byte, off int, want uint32, desc string) *Violation {
	if got := binary.LittleEndian.Uint32(img[off:]); got != want {
		return &Violation{off, fmt.Sprintf("%#x", want), uint64(got), desc}
	}
	return nil
}

func expectNotByte(img []byte, off int, desc string, unwanted ...byte) *Violation {
	got := img[off]
	for _, u := range unwanted {
		if got == u {
			not := make([]string, len(unwanted))
			for i, u := range unwanted {
				not[i] = fmt.Sprintf("0x%02x", u)
			}
			return &Violation{off, "not " + strings.Join(not, " or "), uint64(got), desc}
		}
	}
	return nil
}

// Validate checks img against the floppy layout and returns the first
// deviation as a *Violation, or nil if img conforms. img is not modified.
func Validate(img []byte, mode Mode) error {
	if v := SizeMismatch(int64(len(img))); v != nil {
		return v
	}

	payloadEnd := DataOffset + PayloadSize - 1
	checks := []func() *Violation{
		func() *Violation { return expectByte(img, 0, bootJump, "missing boot jump") },
		func() *Violation {
			return expectUint16(img, bootSignatureOffset, bootSignature, "missing boot signature")
		},
		func() *Violation { return expectUint16(img, FATOffset, fatSignature, "first FAT signature") },
		func() *Violation {
			return expectUint16(img, SecondFATOffset, fatSignature, "second FAT signature")
		},
		func() *Violation { return expectByte(img, RootDirOffset-1, 0x00, "FAT padding") },
	}
	switch mode {
	case Strict:
		checks = append(checks,
			func() *Violation { return expectByte(img, RootDirOffset, 'O', "root dir entry") },
			func() *Violation {
				return expectUint32(img, RootDirOffset+sizeFieldOffset, PayloadSize, "root dir file size")
			})
	default:
		checks = append(checks,
			func() *Violation { return expectNotByte(img, RootDirOffset, "root dir entry", 0x00) })
	}
	checks = append(checks,
		func() *Violation { return expectByte(img, DataOffset-1, 0x00, "root dir padding") },
		func() *Violation {
			return expectNotByte(img, DataOffset, "data region uninitialized or sentinel-only", 0x00, PayloadFill)
		})
	if mode == Strict {
		checks = append(checks,
			func() *Violation { return expectByte(img, payloadEnd, PayloadFill, "payload padding") },
			func() *Violation { return expectByte(img, payloadEnd+1, 0x00, "payload padding") })
	}

	for _, check := range checks {
		if v := check(); v != nil {
			return v
		}
	}
	return nil
}
