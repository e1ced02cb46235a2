package fat12

import "github.com/pkg/errors"

// Entries decodes all complete 12-bit entries of table, including the two
// reserved entries at the start.
func Entries(table []byte) []uint16 {
	entries := make([]uint16, 0, len(table)/pairSize*2)
	for off := 0; off+pairSize <= len(table); off += pairSize {
		a, b := UnpackPair([3]byte{table[off], table[off+1], table[off+2]})
		entries = append(entries, a, b)
	}
	return entries
}

// IsEndOfChain reports whether entry terminates a cluster chain.
func IsEndOfChain(entry uint16) bool {
	return entry >= 0xFF8 && entry <= 0xFFF
}

// IsReserved reports whether entry is one of the values which can neither
// link to a cluster nor terminate a chain.
func IsReserved(entry uint16) bool {
	return entry < FirstCluster || (entry >= 0xFF0 && entry <= 0xFF6)
}

// IsBad reports whether entry marks a bad cluster.
func IsBad(entry uint16) bool {
	return entry == BadCluster
}

// Chain follows the cluster chain starting at cluster start and returns the
// clusters in order, the last one being the cluster whose entry is an
// end-of-chain marker.
func Chain(table []byte, start uint16) ([]uint16, error) {
	entries := Entries(table)
	var chain []uint16
	for cluster := start; ; {
		if int(cluster) >= len(entries) || IsReserved(cluster) || IsBad(cluster) || IsEndOfChain(cluster) {
			return nil, errors.Errorf("cluster %#x out of range (FAT has %d entries)", cluster, len(entries))
		}
		if len(chain) == len(entries) {
			return nil, errors.Errorf("cluster chain starting at %#x contains a loop", start)
		}
		chain = append(chain, cluster)
		next := entries[cluster]
		switch {
		case IsEndOfChain(next):
			return chain, nil
		case IsBad(next):
			return nil, errors.Errorf("cluster %#x links to a bad cluster", cluster)
		case next == 0:
			return nil, errors.Errorf("cluster %#x is free but part of the chain", cluster)
		}
		cluster = next
	}
}
