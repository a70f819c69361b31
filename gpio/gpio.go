// Package gpio drives GPIO pins through the Linux sysfs interface
// under /sys/class/gpio.
//
// A pin has no in-memory representation here: every operation is a
// single open + read/write round trip against the kernel's control
// files, and the package keeps no per-pin state between calls. The
// caller is responsible for sequencing (export before use, unexport
// when done); calling out of order fails with an I/O error because
// the kernel has not materialized the pin's files yet.
package gpio

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// SysfsRoot is where the kernel exposes GPIO control files.
const SysfsRoot = "/sys/class/gpio"

// Direction configures whether a pin senses (In) or drives (Out) a signal.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Pins is the operation surface shared by Chip and Simulator.
type Pins interface {
	Export(pin int) error
	Unexport(pin int) error
	SetDirection(pin int, dir Direction) error
	Write(pin int, high bool) error
	Read(pin int) (bool, error)
}

// Chip issues pin operations against a sysfs tree. The filesystem seam
// exists so tests and the simulator can swap the real tree for an
// in-memory one.
type Chip struct {
	fs   afero.Fs
	root string
}

// New returns a Chip operating on the host's /sys/class/gpio.
func New() *Chip {
	return NewWithFs(afero.NewOsFs(), SysfsRoot)
}

// NewWithFs returns a Chip operating on root inside fs.
func NewWithFs(fs afero.Fs, root string) *Chip {
	return &Chip{fs: fs, root: root}
}

// The four kinds of control file a pin operation can touch.
type pathKind int

const (
	pathExport pathKind = iota
	pathUnexport
	pathValue
	pathDirection
)

// path computes the sysfs path for kind. Paths are derived fresh on
// every call; pin is only ever formatted as a decimal, never validated.
func (c *Chip) path(kind pathKind, pin int) string {
	switch kind {
	case pathExport:
		return filepath.Join(c.root, "export")
	case pathUnexport:
		return filepath.Join(c.root, "unexport")
	case pathValue:
		return filepath.Join(c.root, "gpio"+strconv.Itoa(pin), "value")
	case pathDirection:
		return filepath.Join(c.root, "gpio"+strconv.Itoa(pin), "direction")
	}
	panic("gpio: unknown path kind")
}

// Export asks the kernel to materialize the control files for pin.
// The kernel rejects exporting a pin twice, or a pin the platform
// does not expose; both surface as I/O errors.
func (c *Chip) Export(pin int) error {
	return c.writeFile("export", pin, c.path(pathExport, pin), strconv.Itoa(pin))
}

// Unexport releases pin, removing its control files.
func (c *Chip) Unexport(pin int) error {
	return c.writeFile("unexport", pin, c.path(pathUnexport, pin), strconv.Itoa(pin))
}

// SetDirection configures pin as input or output. Pins hardwired to
// one direction by the platform reject the write.
func (c *Chip) SetDirection(pin int, dir Direction) error {
	return c.writeFile("set direction", pin, c.path(pathDirection, pin), string(dir))
}

// Write drives pin high or low. Only meaningful once the pin is an
// output; the kernel, not this package, decides what a write to an
// input pin does.
func (c *Chip) Write(pin int, high bool) error {
	payload := "0"
	if high {
		payload = "1"
	}
	return c.writeFile("write", pin, c.path(pathValue, pin), payload)
}

// Read returns the current level of pin. The kernel reports a decimal
// integer; anything greater than zero reads as high. Content that is
// not an integer at all is a parse error, distinct from I/O failures.
func (c *Chip) Read(pin int) (bool, error) {
	buf, err := afero.ReadFile(c.fs, c.path(pathValue, pin))
	if err != nil {
		return false, &Error{Op: "read", Pin: pin, Kind: KindIO, Err: err}
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(buf)))
	if err != nil {
		return false, &Error{Op: "read", Pin: pin, Kind: KindParse, Err: err}
	}
	return v > 0, nil
}

// writeFile opens path write-only, writes payload and closes the file.
// Sysfs attribute files always exist once the pin does, so nothing is
// ever created here; a missing file means the pin is not exported.
func (c *Chip) writeFile(op string, pin int, path, payload string) error {
	f, err := c.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &Error{Op: op, Pin: pin, Kind: KindIO, Err: err}
	}
	if _, err := f.Write([]byte(payload)); err != nil {
		f.Close()
		return &Error{Op: op, Pin: pin, Kind: KindIO, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: op, Pin: pin, Kind: KindIO, Err: err}
	}
	return nil
}

var std = New()

// Export exports pin on the host's sysfs tree.
func Export(pin int) error { return std.Export(pin) }

// Unexport releases pin on the host's sysfs tree.
func Unexport(pin int) error { return std.Unexport(pin) }

// SetDirection configures pin on the host's sysfs tree.
func SetDirection(pin int, dir Direction) error { return std.SetDirection(pin, dir) }

// Write drives pin on the host's sysfs tree.
func Write(pin int, high bool) error { return std.Write(pin, high) }

// Read returns the level of pin on the host's sysfs tree.
func Read(pin int) (bool, error) { return std.Read(pin) }
