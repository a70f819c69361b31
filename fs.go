package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// RgpioFS is an Afero FS with added functionality
// to replicate OS filesystems in testing
type RgpioFS interface {
	afero.Fs
	Abs(string) (string, error)
	HomeDir() (string, error)
}

type rgpioOSFS struct {
	afero.Fs
}

func NewRgpioOSFS() RgpioFS {
	return &rgpioOSFS{
		afero.NewOsFs(),
	}
}

func (r *rgpioOSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (r *rgpioOSFS) HomeDir() (string, error) {
	return os.UserHomeDir()
}

type rgpioMemFS struct {
	afero.Fs
}

func NewRgpioMemFS() RgpioFS {
	return &rgpioMemFS{
		afero.NewMemMapFs(),
	}
}

func (r *rgpioMemFS) Abs(path string) (string, error) {
	return path, nil
}

func (r *rgpioMemFS) HomeDir() (string, error) {
	return "/", nil
}
