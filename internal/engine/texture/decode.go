// Package texture decodes diffuse images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when no decoder matches an image.
var ErrUnknownFormat = errors.New("unknown image format")

// Decode decodes image data, choosing the decoder by the file extension of name.
func Decode(name string, data []byte) (image.Image, error) {
	var (
		img image.Image
		err error
	)

	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		img, err = png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case ".bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	case ".webp":
		img, err = webp.Decode(bytes.NewReader(data))
	case ".tga":
		img, err = DecodeTGA(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// ToRGBA converts img to a tightly packed RGBA image with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
