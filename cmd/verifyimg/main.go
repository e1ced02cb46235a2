// verifyimg checks that a file is a 1.44MB floppy image with the expected
// FAT12 layout. It exits silently with status 0 if so.
//
// Usage:
//
//	verifyimg [--mode strict|lenient] <image>
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gokrazy/floppy/floppy"
	"github.com/gokrazy/floppy/humanize"
	"github.com/gokrazy/floppy/imgfile"
	"github.com/gokrazy/floppy/modeflag"
)

func verify(path string, mode floppy.Mode) error {
	img, err := imgfile.Open(path)
	if err != nil {
		return err
	}
	defer img.Close()
	log.Debugf("loaded %s (%s)", path, humanize.Bytes(uint64(len(img.Bytes()))))
	if err := floppy.Validate(img.Bytes(), mode); err != nil {
		return err
	}
	return img.Close()
}

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "log progress")
	modeflag.RegisterPflags(pflag.CommandLine)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image>\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	mode, err := modeflag.Mode()
	if err != nil {
		log.Fatal(err)
	}
	path := pflag.Arg(0)
	if err := verify(path, mode); err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	log.Debugf("%s: valid (%v)", path, mode)
}
