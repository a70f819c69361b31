package gpio

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
)

// Simulator models the kernel side of the sysfs GPIO protocol on an
// in-memory filesystem, so the toggle driver, the HTTP surface and
// tests can run on machines without GPIO hardware. Export materializes
// a pin's control files, unexport removes them, and everything in
// between goes through a real Chip over the same tree, exercising the
// same code paths as hardware would.
type Simulator struct {
	fs   afero.Fs
	chip *Chip
}

// NewSimulator returns an empty simulated GPIO tree with no pins
// exported.
func NewSimulator() *Simulator {
	fs := afero.NewMemMapFs()
	return &Simulator{
		fs:   fs,
		chip: NewWithFs(fs, SysfsRoot),
	}
}

func (s *Simulator) pinDir(pin int) string {
	return filepath.Join(SysfsRoot, "gpio"+strconv.Itoa(pin))
}

// Export materializes the pin's direction and value files. Like the
// kernel, it rejects a duplicate export.
func (s *Simulator) Export(pin int) error {
	dir := s.pinDir(pin)
	if ok, _ := afero.DirExists(s.fs, dir); ok {
		return &Error{Op: "export", Pin: pin, Kind: KindIO, Err: os.ErrExist}
	}
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return &Error{Op: "export", Pin: pin, Kind: KindIO, Err: err}
	}
	// Fresh pins come up as inputs reading low, same as the kernel.
	if err := afero.WriteFile(s.fs, filepath.Join(dir, "direction"), []byte("in\n"), 0644); err != nil {
		return &Error{Op: "export", Pin: pin, Kind: KindIO, Err: err}
	}
	if err := afero.WriteFile(s.fs, filepath.Join(dir, "value"), []byte("0\n"), 0644); err != nil {
		return &Error{Op: "export", Pin: pin, Kind: KindIO, Err: err}
	}
	return nil
}

// Unexport removes the pin's control files. Unexporting a pin that was
// never exported fails, as it does on hardware.
func (s *Simulator) Unexport(pin int) error {
	dir := s.pinDir(pin)
	if ok, _ := afero.DirExists(s.fs, dir); !ok {
		return &Error{Op: "unexport", Pin: pin, Kind: KindIO, Err: os.ErrNotExist}
	}
	if err := s.fs.RemoveAll(dir); err != nil {
		return &Error{Op: "unexport", Pin: pin, Kind: KindIO, Err: err}
	}
	return nil
}

// SetDirection configures the simulated pin.
func (s *Simulator) SetDirection(pin int, dir Direction) error {
	return s.chip.SetDirection(pin, dir)
}

// Write drives the simulated pin.
func (s *Simulator) Write(pin int, high bool) error {
	return s.chip.Write(pin, high)
}

// Read returns the simulated pin's level.
func (s *Simulator) Read(pin int) (bool, error) {
	return s.chip.Read(pin)
}
