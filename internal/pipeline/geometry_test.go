package pipeline

import "testing"

func TestAbsoluteBox(t *testing.T) {
	tests := []struct {
		name   string
		rel    RelativeBox
		width  int
		height int
		want   BoundingBox
	}{
		{
			name:   "Full frame",
			rel:    RelativeBox{XMin: 0, YMin: 0, Width: 1, Height: 1},
			width:  640,
			height: 480,
			want:   BoundingBox{XMin: 0, YMin: 0, XMax: 640, YMax: 480},
		},
		{
			name:   "Centered quarter",
			rel:    RelativeBox{XMin: 0.25, YMin: 0.25, Width: 0.5, Height: 0.5},
			width:  640,
			height: 480,
			want:   BoundingBox{XMin: 160, YMin: 120, XMax: 480, YMax: 360},
		},
		{
			name:   "Rounds each edge independently",
			rel:    RelativeBox{XMin: 0.333, YMin: 0.333, Width: 0.333, Height: 0.333},
			width:  100,
			height: 100,
			want:   BoundingBox{XMin: 33, YMin: 33, XMax: 67, YMax: 67},
		},
		{
			name:   "Half-pixel rounds up",
			rel:    RelativeBox{XMin: 0.5, YMin: 0.5, Width: 0.25, Height: 0.25},
			width:  2,
			height: 2,
			want:   BoundingBox{XMin: 1, YMin: 1, XMax: 2, YMax: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AbsoluteBox(tt.rel, tt.width, tt.height)
			if got != tt.want {
				t.Errorf("AbsoluteBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxClip(t *testing.T) {
	tests := []struct {
		name     string
		box      BoundingBox
		width    int
		height   int
		want     BoundingBox
		wantArea int
	}{
		{
			name:     "Inside stays untouched",
			box:      BoundingBox{XMin: 10, YMin: 10, XMax: 50, YMax: 40},
			width:    100,
			height:   100,
			want:     BoundingBox{XMin: 10, YMin: 10, XMax: 50, YMax: 40},
			wantArea: 1200,
		},
		{
			name:     "Overhanging edges clipped",
			box:      BoundingBox{XMin: -5, YMin: -8, XMax: 120, YMax: 130},
			width:    100,
			height:   100,
			want:     BoundingBox{XMin: 0, YMin: 0, XMax: 100, YMax: 100},
			wantArea: 10000,
		},
		{
			name:     "Fully outside collapses to zero area",
			box:      BoundingBox{XMin: 150, YMin: 150, XMax: 200, YMax: 200},
			width:    100,
			height:   100,
			want:     BoundingBox{XMin: 100, YMin: 100, XMax: 100, YMax: 100},
			wantArea: 0,
		},
		{
			name:     "Box at exact edge keeps zero area",
			box:      BoundingBox{XMin: 100, YMin: 0, XMax: 120, YMax: 50},
			width:    100,
			height:   100,
			want:     BoundingBox{XMin: 100, YMin: 0, XMax: 100, YMax: 50},
			wantArea: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.Clip(tt.width, tt.height)
			if got != tt.want {
				t.Errorf("Clip() = %+v, want %+v", got, tt.want)
			}
			if got.Area() != tt.wantArea {
				t.Errorf("Clip().Area() = %d, want %d", got.Area(), tt.wantArea)
			}
			if got.XMin < 0 || got.YMin < 0 || got.XMax > tt.width || got.YMax > tt.height {
				t.Errorf("Clip() left coordinates outside image bounds: %+v", got)
			}
		})
	}
}

func TestCropLocalToImage(t *testing.T) {
	crop := BoundingBox{XMin: 50, YMin: 60, XMax: 150, YMax: 160}

	got := cropLocalToImage(0.5, 0.55, crop)
	want := Landmark{X: 100, Y: 115}
	if got != want {
		t.Errorf("cropLocalToImage(0.5, 0.55) = %+v, want %+v", got, want)
	}

	got = cropLocalToImage(0, 0, crop)
	want = Landmark{X: 50, Y: 60}
	if got != want {
		t.Errorf("cropLocalToImage(0, 0) = %+v, want %+v", got, want)
	}

	got = cropLocalToImage(1, 1, crop)
	want = Landmark{X: 150, Y: 160}
	if got != want {
		t.Errorf("cropLocalToImage(1, 1) = %+v, want %+v", got, want)
	}
}

func TestBoundingBoxJSON(t *testing.T) {
	box := BoundingBox{XMin: 1, YMin: 2, XMax: 3, YMax: 4}

	data, err := box.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != "[1,2,3,4]" {
		t.Errorf("MarshalJSON() = %s, want [1,2,3,4]", data)
	}

	var parsed BoundingBox
	if err := parsed.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if parsed != box {
		t.Errorf("round trip = %+v, want %+v", parsed, box)
	}

	if err := parsed.UnmarshalJSON([]byte(`{"x":1}`)); err == nil {
		t.Error("UnmarshalJSON() accepted a non-array payload")
	}
}
