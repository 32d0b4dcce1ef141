package pipeline

import "testing"

func TestSkinRegionLocatorNoFaces(t *testing.T) {
	locator := NewSkinRegionLocator(0.5)

	tests := []struct {
		name string
		img  *Image
	}{
		{name: "Uniform gray", img: newUniformImage(320, 240, 90, 90, 90)},
		{name: "Uniform black", img: newUniformImage(320, 240, 0, 0, 0)},
		{name: "Striped non-skin", img: newStripedImage(320, 240, 4)},
		{name: "Tiny skin speck", img: func() *Image {
			m := newUniformImage(320, 240, 90, 90, 90)
			drawFilledEllipse(m, 100, 100, 4, 4, 224, 172, 105)
			return m
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := locator.Locate(tt.img)
			if len(got) != 0 {
				t.Errorf("Locate() found %d candidates, want 0", len(got))
			}
		})
	}
}

func TestSkinRegionLocatorFindsFace(t *testing.T) {
	face := testFace{cx: 320, cy: 240, rx: 80, ry: 100}
	img := newFaceImage(640, 480, face)
	locator := NewSkinRegionLocator(0.5)

	candidates := locator.Locate(img)
	if len(candidates) != 1 {
		t.Fatalf("Locate() found %d candidates, want 1", len(candidates))
	}

	c := candidates[0]
	if c.Confidence < 0.5 || c.Confidence > 1 {
		t.Errorf("Confidence = %f, want in [0.5, 1]", c.Confidence)
	}

	got := AbsoluteBox(c.Box, img.Width, img.Height)
	want := face.bounds()

	const tolerance = 3
	if abs(got.XMin-want.XMin) > tolerance || abs(got.YMin-want.YMin) > tolerance ||
		abs(got.XMax-want.XMax) > tolerance || abs(got.YMax-want.YMax) > tolerance {
		t.Errorf("bounding box = %+v, want %+v within %d px", got, want, tolerance)
	}
}

func TestSkinRegionLocatorRelativeCoordinates(t *testing.T) {
	img := newFaceImage(640, 480, testFace{cx: 320, cy: 240, rx: 80, ry: 100})
	locator := NewSkinRegionLocator(0.5)

	for _, c := range locator.Locate(img) {
		for _, v := range []float64{c.Box.XMin, c.Box.YMin, c.Box.Width, c.Box.Height} {
			if v < 0 || v > 1 {
				t.Errorf("relative coordinate %f outside [0,1]", v)
			}
		}
		if c.Box.XMin+c.Box.Width > 1+1e-9 || c.Box.YMin+c.Box.Height > 1+1e-9 {
			t.Errorf("relative box %+v extends past the frame", c.Box)
		}
	}
}

func TestSkinRegionLocatorDeterministic(t *testing.T) {
	img := newFaceImage(640, 480, testFace{cx: 280, cy: 220, rx: 70, ry: 90})
	locator := NewSkinRegionLocator(0.5)

	first := locator.Locate(img)
	second := locator.Locate(img)

	if len(first) != len(second) {
		t.Fatalf("repeated Locate() returned %d then %d candidates", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("candidate %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSkinRegionLocatorMultipleFaces(t *testing.T) {
	img := newUniformImage(640, 480, 90, 90, 90)
	big := testFace{cx: 180, cy: 240, rx: 80, ry: 100}
	small := testFace{cx: 480, cy: 240, rx: 40, ry: 52}
	drawFilledEllipse(img, big.cx, big.cy, big.rx, big.ry, 224, 172, 105)
	drawFilledEllipse(img, small.cx, small.cy, small.rx, small.ry, 224, 172, 105)

	locator := NewSkinRegionLocator(0.5)
	candidates := locator.Locate(img)
	if len(candidates) != 2 {
		t.Fatalf("Locate() found %d candidates, want 2", len(candidates))
	}

	// Largest face first.
	a0 := candidates[0].Box.Width * candidates[0].Box.Height
	a1 := candidates[1].Box.Width * candidates[1].Box.Height
	if a0 < a1 {
		t.Errorf("candidates not ordered by area: %f before %f", a0, a1)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
