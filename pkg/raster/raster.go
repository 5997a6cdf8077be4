// Package raster holds the small set of pixel operations the pipeline
// needs: decoding embedded picture bytes, scaling into a target box,
// horizontal concatenation and PNG output. Everything works on the
// standard image types so callers can compose freely.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	// Embedded deck pictures come in whatever format the authoring tool
	// saved them as; register the common ones.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode turns raw embedded picture bytes into an image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Clone copies src into a fresh RGBA buffer normalized to a zero origin.
func Clone(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}

// Canvas allocates a width×height image filled with the given color.
func Canvas(width, height int, fill color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, xdraw.Src)
	return dst
}

// Scale resizes src to exactly width×height.
func Scale(src image.Image, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scale to %dx%d: dimensions must be positive", width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Paste draws src onto dst with its top-left corner at (x, y), painting
// over anything already there.
func Paste(dst *image.RGBA, src image.Image, x, y int) {
	b := src.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	xdraw.Draw(dst, r, src, b.Min, xdraw.Over)
}

// ConcatHorizontal places the images left to right at their native sizes,
// top-aligned. The canvas is sum-of-widths wide and max-height tall, with
// opaque black wherever a shorter image leaves a gap.
func ConcatHorizontal(images []image.Image) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("concat: no images")
	}

	totalWidth, maxHeight := 0, 0
	for _, img := range images {
		b := img.Bounds()
		totalWidth += b.Dx()
		if b.Dy() > maxHeight {
			maxHeight = b.Dy()
		}
	}

	dst := Canvas(totalWidth, maxHeight, color.Black)
	xOffset := 0
	for _, img := range images {
		Paste(dst, img, xOffset, 0)
		xOffset += img.Bounds().Dx()
	}
	return dst, nil
}

// EncodePNG writes img to w in PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG saves img as a PNG file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
