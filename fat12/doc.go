// Package fat12 encodes and decodes FAT12 file allocation tables as found on
// 1.44MB 3.5" floppy disks.
//
// A FAT12 table stores one 12-bit entry per cluster. Two consecutive entries
// share three bytes, little-endian and nibble-interleaved, so encoding always
// happens in pairs (see PackPair).
//
// Encode produces a table holding a single file which occupies the first
// clusters of the data area sequentially, which is all that is needed to
// describe a floppy image carrying one contiguous file.
package fat12
