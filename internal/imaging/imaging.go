package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pixels is a decoded image laid out for upload: rows bottom-up,
// Channels bytes per pixel, no row padding.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

// Stride returns the number of bytes in one row.
func (p *Pixels) Stride() int {
	return p.Width * p.Channels
}

// Load decodes the image file at path.
func Load(path string) (*Pixels, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	px, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return px, nil
}

// Decode reads an image and returns its pixels flipped vertically, so the
// first row is the bottom of the picture as texture coordinates expect.
func Decode(r io.Reader) (*Pixels, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// FromImage converts img into packed, vertically flipped pixels.
func FromImage(img image.Image) (*Pixels, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", b.Dx(), b.Dy())
	}

	// NRGBA keeps straight alpha, which is what the texture upload expects.
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	channels := Channels(img)
	px := &Pixels{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: channels,
		Data:     make([]byte, b.Dx()*b.Dy()*channels),
	}

	stride := px.Stride()
	for y := 0; y < px.Height; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+px.Width*4]
		dst := px.Data[(px.Height-1-y)*stride : (px.Height-y)*stride]
		if channels == 4 {
			copy(dst, src)
			continue
		}
		for x := 0; x < px.Width; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return px, nil
}

// Channels reports how many channels the source image carries: 4 when it has
// an alpha channel, 3 otherwise.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return 4
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	case *image.RGBA, *image.RGBA64:
		if opaque(img) {
			return 3
		}
		return 4
	default:
		return 3
	}
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
