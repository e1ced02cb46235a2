package humanize

import "fmt"

func Bytes(bytes uint64) string {
	switch {
	case bytes >= (1024 * 1024):
		return fmt.Sprintf("%.2f MiB", float64(bytes)/1024/1024)
	case bytes >= 1024:
		return fmt.Sprintf("%.f KiB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Sectors returns bytes as a number of sectorSize sized sectors, rounded up.
func Sectors(bytes uint64, sectorSize uint64) string {
	sectors := (bytes + sectorSize - 1) / sectorSize
	if sectors == 1 {
		return "1 sector"
	}
	return fmt.Sprintf("%d sectors", sectors)
}
