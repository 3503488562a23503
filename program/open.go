package program

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/px65/asm"
	"github.com/hexaflex/px65/asm/ar"
	"github.com/hexaflex/px65/devices/fffe/cpu"
)

// Known file extensions.
const (
	ArchiveExt = ".p65" // Assembled archive with debug symbols.
)

// IsSource returns true if the given path names an assembly source file.
func IsSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asm", ".s":
		return true
	}
	return false
}

// Open loads a program in any supported format: assembled archives,
// assembly sources, hex text and raw binary images. Only archives and
// sources come with debug symbols.
func Open(path string) (*ar.Archive, error) {
	switch {
	case strings.EqualFold(filepath.Ext(path), ArchiveExt):
		return openArchive(path)
	case IsSource(path):
		return asm.AssembleFile(path, cpu.Origin)
	}

	p, err := Load(path)
	if err != nil {
		return nil, err
	}

	return &ar.Archive{
		Origin:       cpu.Origin,
		Instructions: p,
	}, nil
}

func openArchive(path string) (*ar.Archive, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	a := ar.New()
	if err := a.Load(fd); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	if a.Origin != cpu.Origin {
		return nil, errors.Errorf("%s: archive origin %04x does not match the load address %04x", path, a.Origin, cpu.Origin)
	}

	return a, checkSize(path, len(a.Instructions))
}
