package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"gocv.io/x/gocv"
)

// Image is a packed 3-channel RGB pixel grid. It is owned exclusively by the
// pipeline invocation that decoded it and is never mutated after decode; the
// annotator works on its own copy.
type Image struct {
	Width  int
	Height int
	Pix    []uint8 // interleaved RGB, len == Width*Height*3
}

func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

func (m *Image) RGB(x, y int) (uint8, uint8, uint8) {
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

func (m *Image) SetRGB(x, y int, r, g, b uint8) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = r
	m.Pix[i+1] = g
	m.Pix[i+2] = b
}

// Crop copies the region delimited by the box, which must already be clipped
// to the image bounds. A degenerate box yields an empty image.
func (m *Image) Crop(b BoundingBox) *Image {
	c := NewImage(b.Width(), b.Height())
	for y := 0; y < c.Height; y++ {
		srcOff := ((b.YMin+y)*m.Width + b.XMin) * 3
		dstOff := y * c.Width * 3
		copy(c.Pix[dstOff:dstOff+c.Width*3], m.Pix[srcOff:srcOff+c.Width*3])
	}
	return c
}

// Decode parses encoded raster bytes (JPEG, PNG or GIF container) into an
// RGB grid. Malformed, truncated or empty input yields ErrDecode.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}

	m := NewImage(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			m.Pix[i] = uint8(r >> 8)
			m.Pix[i+1] = uint8(g >> 8)
			m.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}

	return m, nil
}

// toMat copies the pixels into an OpenCV Mat in BGR channel order. The Mat
// owns its own buffer; the caller must Close it.
func (m *Image) toMat() (gocv.Mat, error) {
	bgr := make([]uint8, len(m.Pix))
	for i := 0; i < len(m.Pix); i += 3 {
		bgr[i] = m.Pix[i+2]
		bgr[i+1] = m.Pix[i+1]
		bgr[i+2] = m.Pix[i]
	}
	return gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8UC3, bgr)
}

// fromMat packs a BGR Mat back into an RGB grid.
func fromMat(mat gocv.Mat) *Image {
	m := NewImage(mat.Cols(), mat.Rows())
	data := mat.ToBytes()
	for i := 0; i+2 < len(data); i += 3 {
		m.Pix[i] = data[i+2]
		m.Pix[i+1] = data[i+1]
		m.Pix[i+2] = data[i]
	}
	return m
}

// EncodeJPEG serializes the grid as a JPEG byte buffer.
func EncodeJPEG(m *Image, quality int) ([]byte, error) {
	mat, err := m.toMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
