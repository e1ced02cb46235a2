// Package floppy describes the layout of a 3.5" 1.44MB floppy image holding
// a FAT12 file system with a single file, and implements building such
// images (Writer) as well as checking that an image conforms to the layout
// (Validate).
//
// All offsets are fixed by the floppy geometry: 512 byte sectors, one
// reserved (boot) sector, two copies of a 9 sector FAT, a 224 entry root
// directory and 2880 sectors in total.
package floppy
