package fat12

import (
	"strconv"

	"github.com/pkg/errors"
)

const (
	// SectorSize is the size of one sector in bytes.
	SectorSize = 512

	// SectorsPerTable is the number of sectors occupied by one copy of the
	// FAT on a 1.44MB floppy.
	SectorsPerTable = 9

	// TableSize is the size of one FAT in bytes.
	TableSize = SectorsPerTable * SectorSize

	// MaxClusters is the largest cluster count Encode accepts: values from
	// 0xFF0 upwards have special meaning.
	MaxClusters = 0xFF0

	// FirstCluster is the first cluster of the data area. The first two FAT
	// entries hold the media descriptor and a reserved end-of-chain marker.
	FirstCluster = 2

	// EndOfChain marks the last cluster of a file.
	EndOfChain = uint16(0xFFF)

	// BadCluster marks a cluster which must not be used.
	BadCluster = uint16(0xFF7)

	// floppy is the media descriptor for a 3.5" 1.44MB floppy.
	floppy = uint8(0xF0)

	pairSize = 3
)

var (
	// ErrInvalidArgument is returned for cluster counts which are not an
	// integer in [1, MaxClusters].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOverflow is returned when the encoded entries do not fit into
	// TableSize bytes.
	ErrOverflow = errors.New("FAT overflow")
)

// header holds entries 0 and 1: the media descriptor (in the low byte of
// entry 0, the remaining bits set) followed by an end-of-chain marker.
var header = PackPair(0xF00|uint16(floppy), EndOfChain)

// PackPair packs the 12-bit entries a and b into three bytes.
func PackPair(a, b uint16) [3]byte {
	return [3]byte{
		byte(a),
		byte(a>>8)&0x0F | byte(b&0x0F)<<4,
		byte(b >> 4),
	}
}

// UnpackPair is the inverse of PackPair.
func UnpackPair(p [3]byte) (a, b uint16) {
	a = uint16(p[0]) | uint16(p[1]&0x0F)<<8
	b = uint16(p[1]>>4) | uint16(p[2])<<4
	return a, b
}

// usedBytes returns the number of bytes occupied by the header and the
// entries of clusterCount clusters, rounded up to whole pairs.
func usedBytes(clusterCount int) int {
	return len(header) + (clusterCount+1)/2*pairSize
}

// Encode returns a TableSize byte FAT in which clusters FirstCluster up to
// and including FirstCluster+clusterCount-1 form one chain, each entry
// pointing to the following cluster and the last one holding EndOfChain.
//
// When clusterCount is odd, the last entry is paired with a zero entry.
// All bytes following the entries are zero.
func Encode(clusterCount int) ([]byte, error) {
	if clusterCount < 1 || clusterCount > MaxClusters {
		return nil, errors.Wrapf(ErrInvalidArgument, "cluster count %d not in [1, %d]", clusterCount, MaxClusters)
	}
	if used := usedBytes(clusterCount); used > TableSize {
		return nil, errors.Wrapf(ErrOverflow, "%d clusters need %d bytes, FAT holds %d", clusterCount, used, TableSize)
	}

	table := make([]byte, TableSize)
	copy(table, header[:])
	last := FirstCluster + clusterCount - 1
	next := func(cluster int) uint16 {
		if cluster == last {
			return EndOfChain
		}
		return uint16(cluster + 1)
	}
	off := len(header)
	for cluster := FirstCluster; cluster <= last; cluster += 2 {
		var second uint16 // zero when cluster is the last one
		if cluster < last {
			second = next(cluster + 1)
		}
		pair := PackPair(next(cluster), second)
		off += copy(table[off:], pair[:])
	}
	return table, nil
}

// ParseClusterCount parses a decimal cluster count as accepted by Encode.
func ParseClusterCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "cluster count %q is not an integer", s)
	}
	if n < 1 || n > MaxClusters {
		return 0, errors.Wrapf(ErrInvalidArgument, "cluster count %d not in [1, %d]", n, MaxClusters)
	}
	return n, nil
}
