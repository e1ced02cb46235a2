// Package modeflag provides the --mode flag selecting how strictly floppy
// images are validated.
package modeflag

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/gokrazy/floppy/floppy"
)

var mode = func() string {
	def := os.Getenv("FLOPPY_MODE")
	if def == "" {
		def = floppy.Strict.String()
	}
	return def
}()

func RegisterPflags(fs *pflag.FlagSet) {
	fs.StringVarP(&mode,
		"mode",
		"m",
		mode,
		`validation mode: "strict" requires OS.BIN as the first root directory entry, "lenient" any entry (default from $FLOPPY_MODE)`)
}

func SetMode(m string) {
	mode = m
}

// Mode returns the validation mode selected by the flag.
func Mode() (floppy.Mode, error) {
	return floppy.ParseMode(mode)
}
