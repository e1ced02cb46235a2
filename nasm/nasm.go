// Package nasm renders FAT12 tables as NASM source, for inclusion in a
// floppy image assembled with nasm.
package nasm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gokrazy/floppy/fat12"
)

// maxLine is the length after which a DB line is ended.
const maxLine = 72

func pairDirective(p []byte) string {
	return fmt.Sprintf("0x%02X, 0x%02X, 0x%02X", p[0], p[1], p[2])
}

// WriteFAT writes a FAT12 table in which the first clusterCount clusters
// form one chain (see fat12.Encode) as DB directives, followed by a TIMES
// directive padding the table to fat12.TableSize bytes.
func WriteFAT(w io.Writer, clusterCount int) error {
	table, err := fat12.Encode(clusterCount)
	if err != nil {
		return err
	}
	used := 3 + (clusterCount+1)/2*3

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; *** FAT12 table with initial %d clusters linked ***\n\n", clusterCount)
	fmt.Fprintf(bw, "DB %s   ; Start with FAT ID and end-of-chain markers\n\n", pairDirective(table[:3]))

	var line strings.Builder
	line.WriteString("DB ")
	for off := 3; off < used; off += 3 {
		line.WriteString(pairDirective(table[off : off+3]))
		if off+3 == used {
			break
		}
		if line.Len() < maxLine {
			line.WriteString(", ")
			continue
		}
		fmt.Fprintln(bw, line.String())
		line.Reset()
		line.WriteString("DB ")
	}
	fmt.Fprintln(bw, line.String())

	fmt.Fprintf(bw, "\n; Pad out to %d sectors (%d bytes) with 0\n", fat12.SectorsPerTable, fat12.TableSize)
	fmt.Fprintf(bw, "TIMES %d DB 0\n", fat12.TableSize-used)
	fmt.Fprintf(bw, "\n; *** End of FAT12 table ***\n")
	return bw.Flush()
}
