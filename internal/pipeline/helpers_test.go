package pipeline

import (
	"testing"
)

// testFace describes a synthetic frontal face for end-to-end tests: a
// skin-tone ellipse with darker eye and mouth blobs on a gray background.
type testFace struct {
	cx, cy int
	rx, ry int
}

func (f testFace) bounds() BoundingBox {
	return BoundingBox{
		XMin: f.cx - f.rx,
		YMin: f.cy - f.ry,
		XMax: f.cx + f.rx + 1,
		YMax: f.cy + f.ry + 1,
	}
}

func newUniformImage(w, h int, r, g, b uint8) *Image {
	m := NewImage(w, h)
	for i := 0; i < w*h; i++ {
		m.Pix[i*3] = r
		m.Pix[i*3+1] = g
		m.Pix[i*3+2] = b
	}
	return m
}

func drawFilledEllipse(m *Image, cx, cy, rx, ry int, r, g, b uint8) {
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
				continue
			}
			dx := float64(x-cx) / float64(rx)
			dy := float64(y-cy) / float64(ry)
			if dx*dx+dy*dy <= 1.0 {
				m.SetRGB(x, y, r, g, b)
			}
		}
	}
}

func newFaceImage(w, h int, f testFace) *Image {
	m := newUniformImage(w, h, 90, 90, 90)
	drawFilledEllipse(m, f.cx, f.cy, f.rx, f.ry, 224, 172, 105)

	eyeDY := f.ry * 35 / 100
	eyeDX := f.rx * 45 / 100
	drawFilledEllipse(m, f.cx-eyeDX, f.cy-eyeDY, 6, 6, 40, 40, 40)
	drawFilledEllipse(m, f.cx+eyeDX, f.cy-eyeDY, 6, 6, 40, 40, 40)
	drawFilledEllipse(m, f.cx, f.cy+f.ry/2, 10, 5, 120, 50, 50)
	return m
}

// newStripedImage alternates vertical red/green bands. The pattern is sharp,
// colorful and edge-dense, so every heuristic feature reads "genuine".
func newStripedImage(w, h, bandWidth int) *Image {
	m := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/bandWidth)%2 == 0 {
				m.SetRGB(x, y, 255, 0, 0)
			} else {
				m.SetRGB(x, y, 0, 255, 0)
			}
		}
	}
	return m
}

func encodeTestJPEG(t *testing.T, m *Image) []byte {
	t.Helper()
	data, err := EncodeJPEG(m, 95)
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return data
}

func fullBox(m *Image) BoundingBox {
	return BoundingBox{XMin: 0, YMin: 0, XMax: m.Width, YMax: m.Height}
}
