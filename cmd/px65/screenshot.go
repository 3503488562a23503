package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
)

// writeScreenshot scales src by the given factor and writes it as PNG.
func writeScreenshot(w io.Writer, src image.Image, scale int) error {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return png.Encode(w, dst)
}

// saveScreenshot writes src to a time stamped file in the given
// directory and returns its name.
func saveScreenshot(dir string, src image.Image, scale int) (string, error) {
	name := filepath.Join(dir, fmt.Sprintf("%s-%s.png", AppName, time.Now().Format("20060102-150405")))
	return name, writeFile(name, func(w io.Writer) error {
		return writeScreenshot(w, src, scale)
	})
}

// writeFile creates the named file and fills it through write.
// A failure to close the file is reported like a write error.
func writeFile(name string, write func(io.Writer) error) (err error) {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
	}()

	return write(fd)
}
