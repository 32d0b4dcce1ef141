package pipeline

import "testing"

func TestMeshExtractorCount(t *testing.T) {
	img := newFaceImage(640, 480, testFace{cx: 320, cy: 240, rx: 80, ry: 100})
	extractor := NewMeshExtractor()

	tests := []struct {
		name string
		box  BoundingBox
		want int
	}{
		{
			name: "Face crop yields full mesh",
			box:  BoundingBox{XMin: 240, YMin: 140, XMax: 400, YMax: 340},
			want: 8,
		},
		{
			name: "Box outside image yields nothing",
			box:  BoundingBox{XMin: 700, YMin: 500, XMax: 800, YMax: 600},
			want: 0,
		},
		{
			name: "Zero-area box yields nothing",
			box:  BoundingBox{XMin: 100, YMin: 100, XMax: 100, YMax: 200},
			want: 0,
		},
		{
			name: "Crop below mesh minimum yields nothing",
			box:  BoundingBox{XMin: 100, YMin: 100, XMax: 110, YMax: 110},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(img, tt.box)
			if len(got) != tt.want {
				t.Errorf("Extract() returned %d landmarks, want %d", len(got), tt.want)
			}
			if tt.want == 0 && got != nil {
				t.Errorf("Extract() = %v, want nil for absent mesh", got)
			}
		})
	}
}

func TestMeshExtractorGeometry(t *testing.T) {
	img := newFaceImage(640, 480, testFace{cx: 320, cy: 240, rx: 80, ry: 100})
	extractor := NewMeshExtractor()

	box := BoundingBox{XMin: 240, YMin: 140, XMax: 400, YMax: 340}
	lms := extractor.Extract(img, box)
	if len(lms) != 8 {
		t.Fatalf("Extract() returned %d landmarks, want 8", len(lms))
	}

	for i, lm := range lms {
		if lm.X < box.XMin || lm.X > box.XMax || lm.Y < box.YMin || lm.Y > box.YMax {
			t.Errorf("landmark %d at %+v falls outside the crop %+v", i, lm, box)
		}
	}

	// Fixed anatomical order: eye corners left to right, then nose, then mouth.
	leftOuter, leftInner, rightInner, rightOuter := lms[0], lms[1], lms[2], lms[3]
	if !(leftOuter.X < leftInner.X && leftInner.X < rightInner.X && rightInner.X < rightOuter.X) {
		t.Errorf("eye corner ordering violated: %v", lms[:4])
	}
	if leftOuter.Y != leftInner.Y || rightInner.Y != rightOuter.Y || leftOuter.Y != rightOuter.Y {
		t.Errorf("eye corners not on one line: %v", lms[:4])
	}

	nose, mouthLeft, mouthRight, mouthBottom := lms[4], lms[5], lms[6], lms[7]
	if nose.Y <= leftOuter.Y {
		t.Errorf("nose tip y=%d not below eye line y=%d", nose.Y, leftOuter.Y)
	}
	if mouthLeft.X >= mouthRight.X {
		t.Errorf("mouth corners reversed: left x=%d right x=%d", mouthLeft.X, mouthRight.X)
	}
	if mouthBottom.Y <= nose.Y {
		t.Errorf("mouth bottom y=%d not below nose y=%d", mouthBottom.Y, nose.Y)
	}

	// Horizontal positions come straight from the canonical mesh table.
	if nose.X != box.XMin+roundToInt(0.5*float64(box.Width())) {
		t.Errorf("nose x = %d, want crop midline", nose.X)
	}
}

func TestMeshExtractorEyeLineTracksDarkRow(t *testing.T) {
	// A solid crop with one dark band: the eye line must snap to the band.
	img := newUniformImage(200, 200, 224, 172, 105)
	for y := 80; y < 86; y++ {
		for x := 0; x < 200; x++ {
			img.SetRGB(x, y, 20, 20, 20)
		}
	}

	extractor := NewMeshExtractor()
	lms := extractor.Extract(img, fullBox(img))
	if len(lms) != 8 {
		t.Fatalf("Extract() returned %d landmarks, want 8", len(lms))
	}

	if lms[0].Y < 80 || lms[0].Y > 86 {
		t.Errorf("eye line y = %d, want within dark band [80, 86]", lms[0].Y)
	}
}

func TestEyeLineFallbackMatchesCanonicalRow(t *testing.T) {
	// A crop too short to scan anchors to the mesh table's eye row.
	img := newUniformImage(64, 64, 224, 172, 105)
	crop := BoundingBox{XMin: 0, YMin: 0, XMax: 64, YMax: 1}

	if got, want := eyeLineY(img, crop), meshPoints[meshIndices[0]].y; got != want {
		t.Errorf("eyeLineY() = %f, want canonical eye row %f", got, want)
	}
}
