package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
)

// ImageData is an encoded image, either held in memory or stored on disk.
type ImageData struct {
	// Path is the file path for images stored on disk (ignored when Data is set).
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG).
	Data []byte

	// Width is the image width in pixels (populated after Decode).
	Width int

	// Height is the image height in pixels (populated after Decode).
	Height int
}

// Decode decodes the image to raw RGBA pixel data.
// Uses either in-memory Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
//
// Returns:
//   - []byte: raw RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: image width in pixels
//   - uint32: image height in pixels
//   - error: error if decoding fails
func (d *ImageData) Decode() ([]byte, uint32, uint32, error) {
	if d == nil {
		return nil, 0, 0, fmt.Errorf("image is nil")
	}

	var img image.Image
	var err error

	if len(d.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(d.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode image data: %w", err)
		}
	} else if d.Path != "" {
		file, fileErr := os.Open(d.Path)
		if fileErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open image file %s: %w", d.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode image file %s: %w", d.Path, err)
		}
	} else {
		return nil, 0, 0, fmt.Errorf("image has neither data nor path")
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	d.Width = bounds.Dx()
	d.Height = bounds.Dy()

	return rgba.Pix, uint32(d.Width), uint32(d.Height), nil
}

// FloatsToRGBA8 converts normalized float components to 8-bit RGBA pixels, clamping to [0, 1].
// channels is the number of components per source pixel (1-4); missing color channels are zero
// and a missing alpha channel is opaque.
//
// Parameters:
//   - src: the float components, row-major
//   - channels: components per pixel in src
//
// Returns:
//   - []byte: RGBA pixel data, 4 bytes per pixel
func FloatsToRGBA8(src []float32, channels int) []byte {
	if channels <= 0 {
		return nil
	}
	pixels := len(src) / channels
	out := make([]byte, pixels*4)
	for p := 0; p < pixels; p++ {
		out[p*4+3] = 255
		for c := 0; c < min(channels, 4); c++ {
			v := min(max(src[p*channels+c], 0), 1)
			out[p*4+c] = byte(v*255 + 0.5)
		}
	}
	return out
}

// WritePNG encodes RGBA pixel data as a PNG file. Rows are written top to bottom; set flipY for
// data read back from the GPU, whose first row is the bottom of the image.
//
// Parameters:
//   - path: the output file path
//   - pixels: RGBA pixel data, 4 bytes per pixel
//   - width: image width in pixels
//   - height: image height in pixels
//   - flipY: whether to reverse the row order
//
// Returns:
//   - error: error if the data does not match the size or the file cannot be written
func WritePNG(path string, pixels []byte, width, height int, flipY bool) error {
	if len(pixels) != width*height*4 {
		return fmt.Errorf("pixel data has %d bytes, expected %d for %dx%d", len(pixels), width*height*4, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stride := width * 4
	for y := 0; y < height; y++ {
		src := y
		if flipY {
			src = height - 1 - y
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], pixels[src*stride:(src+1)*stride])
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
