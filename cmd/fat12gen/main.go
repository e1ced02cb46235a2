// fat12gen prints a FAT12 table in which the first clusters of the data area
// are linked into one file, as NASM source.
//
// Usage:
//
//	fat12gen [--binary] <clusters>
package main

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gokrazy/floppy/fat12"
	"github.com/gokrazy/floppy/nasm"
)

func main() {
	binary := pflag.Bool("binary", false, "write the raw table bytes instead of NASM source")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <clusters>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Provide the number of clusters as an integer between 1 and %d.\n\n", fat12.MaxClusters)
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	clusters, err := fat12.ParseClusterCount(pflag.Arg(0))
	if err != nil {
		log.Error(err)
		pflag.Usage()
		os.Exit(1)
	}

	var buf bytes.Buffer
	if *binary {
		table, err := fat12.Encode(clusters)
		if err != nil {
			log.Fatal(err)
		}
		buf.Write(table)
	} else if err := nasm.WriteFAT(&buf, clusters); err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		log.Fatal(err)
	}
}
