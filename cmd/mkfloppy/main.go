// mkfloppy builds a 1.44MB floppy image from a boot sector and a single file,
// which is stored contiguously from the first data cluster.
//
// The defaults produce the strict layout checked by verifyimg:
//
//	mkfloppy --boot boot.bin --file os.bin -o floppy.img
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gokrazy/floppy/floppy"
	"github.com/gokrazy/floppy/humanize"
	"github.com/gokrazy/floppy/modeflag"
)

var (
	bootPath = pflag.String("boot", "", "path to the boot sector code, starting with a near jump")
	filePath = pflag.String("file", "", "path to the file to store in the root directory")
	name     = pflag.String("name", floppy.PayloadName, "8.3 name of the file in the root directory")
	sectors  = pflag.Int("sectors", floppy.PayloadSectors, "pad the file to this many sectors (0 disables padding)")
	fill     = pflag.String("fill", fmt.Sprintf("%#x", floppy.PayloadFill), "byte value to pad the file with")
	output   = pflag.StringP("output", "o", "floppy.img", "path of the image to write")
	verify   = pflag.Bool("verify", true, "validate the image (see --mode) before writing it")
	verbose  = pflag.BoolP("verbose", "v", false, "log progress")
)

func build() ([]byte, error) {
	boot, err := os.ReadFile(*bootPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(*filePath)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(*filePath)
	if err != nil {
		return nil, err
	}
	fillByte, err := strconv.ParseUint(*fill, 0, 8)
	if err != nil {
		return nil, errors.Wrap(err, "--fill")
	}

	var buf bytes.Buffer
	fw := floppy.NewWriter(&buf)
	if err := fw.BootSector(boot); err != nil {
		return nil, errors.Wrap(err, *bootPath)
	}
	w, err := fw.File(*name, st.ModTime())
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if *sectors > 0 {
		fw.PadFile(*sectors, byte(fillByte))
	}
	if err := fw.Flush(); err != nil {
		return nil, err
	}
	log.Debugf("%s: %s in %s", *name, humanize.Bytes(uint64(len(data))),
		humanize.Sectors(uint64(len(data)), floppy.SectorSize))
	return buf.Bytes(), nil
}

func main() {
	modeflag.RegisterPflags(pflag.CommandLine)
	pflag.Parse()
	if *bootPath == "" || *filePath == "" {
		pflag.Usage()
		os.Exit(1)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	start := time.Now()
	img, err := build()
	if err != nil {
		log.Fatal(err)
	}
	if *verify {
		mode, err := modeflag.Mode()
		if err != nil {
			log.Fatal(err)
		}
		if err := floppy.Validate(img, mode); err != nil {
			log.Fatalf("built image is not valid (%v): %v", mode, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*output, img, 0644); err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %s (%s) in %v", *output, humanize.Bytes(uint64(len(img))), time.Since(start))
}
