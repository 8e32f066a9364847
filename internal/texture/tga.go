// Package texture decodes garment templates and uploaded artwork and
// exports composited textures.
package texture

import (
	"fmt"
	"image"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA image.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// files at 24 or 32 bits per pixel, the variants template exporters write.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has empty dimensions %dx%d", width, height)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0, // bit 5 set means rows start at the top
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// pixel reads one BGR(A) pixel at the cursor.
func (d *tgaDecoder) pixel() ([4]uint8, bool) {
	if d.pos+d.bpp > len(d.src) {
		return [4]uint8{}, false
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	a := uint8(255)
	if d.bpp == 4 {
		a = p[3]
	}
	return [4]uint8{p[2], p[1], p[0], a}, true
}

// put stores a pixel by its index in file order.
func (d *tgaDecoder) put(idx int, c [4]uint8) {
	x := idx % d.width
	y := idx / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	i := d.img.PixOffset(x, y)
	copy(d.img.Pix[i:i+4], c[:])
}

func (d *tgaDecoder) decodeRaw() error {
	count := d.width * d.height
	if len(d.src) < count*d.bpp {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for idx := 0; idx < count; idx++ {
		c, _ := d.pixel()
		d.put(idx, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	count := d.width * d.height
	idx := 0
	for idx < count && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one pixel repeated n times
			c, ok := d.pixel()
			if !ok {
				break
			}
			for i := 0; i < n && idx < count; i++ {
				d.put(idx, c)
				idx++
			}
			continue
		}

		// Raw: n literal pixels
		for i := 0; i < n && idx < count; i++ {
			c, ok := d.pixel()
			if !ok {
				break
			}
			d.put(idx, c)
			idx++
		}
	}
	if idx < count {
		return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", idx, count)
	}
	return nil
}
