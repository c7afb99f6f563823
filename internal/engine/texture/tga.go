package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrUnsupportedTGA is returned for TGA variants the decoder does not handle.
var ErrUnsupportedTGA = errors.New("unsupported TGA")

const tgaHeaderSize = 18

// tgaReader walks the pixel data of a TGA file.
type tgaReader struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int // bytes per pixel
	topToBottom bool
}

// put stores the i-th pixel in file order.
func (r *tgaReader) put(i int, c color.RGBA) {
	x := i % r.width
	y := i / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
}

// pixel reads one BGR(A) pixel.
func (r *tgaReader) pixel(p []byte) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c
}

// DecodeTGA decodes uncompressed and RLE true-color TGA images with 24 or
// 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: header truncated", ErrUnsupportedTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bits := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, imageType)
	}
	if bits != 24 && bits != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, bits)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: id field truncated", ErrUnsupportedTGA)
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bits / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	pixels := data[offset:]
	if imageType == TGATypeUncompressed {
		if len(pixels) < width*height*r.bpp {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrUnsupportedTGA)
		}
		for i := 0; i < width*height; i++ {
			r.put(i, r.pixel(pixels[i*r.bpp:]))
		}
		return r.img, nil
	}

	r.decodeRLE(pixels)
	return r.img, nil
}

// decodeRLE fills the image from run-length packets. A truncated stream
// leaves the remaining pixels transparent.
func (r *tgaReader) decodeRLE(data []byte) {
	total := r.width * r.height
	n, pos := 0, 0

	for n < total && pos < len(data) {
		packet := data[pos]
		pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if pos+r.bpp > len(data) {
				return
			}
			c := r.pixel(data[pos:])
			pos += r.bpp
			for i := 0; i < count && n < total; i++ {
				r.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			if pos+r.bpp > len(data) {
				return
			}
			r.put(n, r.pixel(data[pos:]))
			pos += r.bpp
			n++
		}
	}
}
