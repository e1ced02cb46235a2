package floppy

import "github.com/gokrazy/floppy/fat12"

const (
	SectorSize      = fat12.SectorSize
	ReservedSectors = 1
	NumFATs         = 2
	SectorsPerFAT   = fat12.SectorsPerTable
	TotalSectors    = 2880

	// RootDirEntries is the number of 32 byte entries in the root directory.
	RootDirEntries = 224
	DirEntrySize   = 32
	RootDirSectors = RootDirEntries * DirEntrySize / SectorSize

	// ImageSize is 0x168000 bytes.
	ImageSize = TotalSectors * SectorSize

	FATSize         = SectorsPerFAT * SectorSize
	FATOffset       = ReservedSectors * SectorSize              // 0x200
	SecondFATOffset = FATOffset + FATSize                       // 0x1400
	RootDirOffset   = FATOffset + NumFATs*FATSize               // 0x2600
	DataOffset      = RootDirOffset + RootDirSectors*SectorSize // 0x4200
	DataSize        = ImageSize - DataOffset

	// DataClusters is the number of clusters in the data area. Each cluster
	// is one sector.
	DataClusters = DataSize / SectorSize
)

const (
	// bootJump is the opcode of the near jump starting the boot sector.
	bootJump = 0xE9

	bootSignature       = 0xAA55
	bootSignatureOffset = SectorSize - 2

	// fatSignature is how the media descriptor and the reserved entry read
	// as a little-endian uint16 at the start of each FAT.
	fatSignature = 0xFFF0

	// sizeFieldOffset is the offset of the file size within a directory
	// entry.
	sizeFieldOffset = 28
)

// The strict layout expects the root directory to start with OS.BIN, a
// PayloadSectors long file whose unused tail is filled with PayloadFill.
const (
	PayloadName    = "OS.BIN"
	PayloadSectors = 120
	PayloadSize    = PayloadSectors * SectorSize // 0xF000
	PayloadFill    = 0xCC
)
