// Package program loads program images from disk.
//
// Two formats are understood: raw binary images, and hex text listing one
// byte per token (see ParseHex). The format is chosen by file extension.
package program

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/hexaflex/px65/devices/fffe/cpu"
)

// MaxSize is the largest program which fits between the load origin
// and the top of memory.
const MaxSize = cpu.AddressSpace - cpu.Origin

// IsHex returns true if the given path names a hex text image.
func IsHex(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".txt":
		return true
	}
	return false
}

// Load reads the program image at the given path.
func Load(path string) ([]byte, error) {
	if IsHex(path) {
		fd, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fd.Close()

		p, err := ParseHex(fd)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return p, checkSize(path, len(p))
	}

	return loadBinary(path)
}

// loadBinary maps the file into memory read-only and copies its contents.
func loadBinary(path string) ([]byte, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	stat, err := fd.Stat()
	if err != nil {
		return nil, err
	}

	if err := checkSize(path, int(stat.Size())); err != nil {
		return nil, err
	}

	// Empty files can not be mapped.
	if stat.Size() == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(fd, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to map %s", path)
	}
	defer m.Unmap()

	p := make([]byte, len(m))
	copy(p, m)
	return p, nil
}

func checkSize(path string, size int) error {
	if size > MaxSize {
		return errors.Errorf("%s: program of %d bytes exceeds the maximum of %d", path, size, MaxSize)
	}
	return nil
}
