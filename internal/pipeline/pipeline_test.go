package pipeline

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestPipeline(seed int64) *Pipeline {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewDefault(seed, log)
}

func TestDecode(t *testing.T) {
	valid := encodeTestJPEG(t, newUniformImage(32, 24, 120, 130, 140))

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
		wantW   int
		wantH   int
	}{
		{name: "Valid JPEG", data: valid, wantW: 32, wantH: 24},
		{name: "Empty bytes", data: nil, wantErr: true},
		{name: "Garbage bytes", data: []byte("certainly not an image"), wantErr: true},
		{name: "Truncated JPEG", data: valid[:20], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrDecode) {
					t.Errorf("Decode() error = %v, want ErrDecode", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if img.Width != tt.wantW || img.Height != tt.wantH {
				t.Errorf("Decode() dimensions = %dx%d, want %dx%d", img.Width, img.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPipelineRunDecodeFailureAborts(t *testing.T) {
	p := newTestPipeline(1)

	if _, err := p.Run(nil, true); !errors.Is(err, ErrDecode) {
		t.Errorf("Run(nil) error = %v, want ErrDecode", err)
	}
	if _, err := p.Run([]byte{0xde, 0xad, 0xbe, 0xef}, true); !errors.Is(err, ErrDecode) {
		t.Errorf("Run(garbage) error = %v, want ErrDecode", err)
	}
}

func TestPipelineRunNoFaces(t *testing.T) {
	p := newTestPipeline(1)
	data := encodeTestJPEG(t, newUniformImage(320, 240, 90, 90, 90))

	outcome, err := p.Run(data, true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(outcome.Faces) != 0 {
		t.Errorf("Run() found %d faces in a blank image, want 0", len(outcome.Faces))
	}
	if outcome.ProcessingTime < 0 {
		t.Errorf("ProcessingTime = %f, want >= 0", outcome.ProcessingTime)
	}

	annotated, err := Decode(outcome.AnnotatedImage)
	if err != nil {
		t.Fatalf("annotated image does not decode: %v", err)
	}
	if annotated.Width != 320 || annotated.Height != 240 {
		t.Errorf("annotated image = %dx%d, want 320x240", annotated.Width, annotated.Height)
	}
}

func TestPipelineRunEndToEnd(t *testing.T) {
	face := testFace{cx: 320, cy: 240, rx: 80, ry: 100}
	data := encodeTestJPEG(t, newFaceImage(640, 480, face))
	p := newTestPipeline(7)

	outcome, err := p.Run(data, true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(outcome.Faces) != 1 {
		t.Fatalf("Run() found %d faces, want 1", len(outcome.Faces))
	}

	got := outcome.Faces[0]
	if got.Confidence < 0.5 {
		t.Errorf("confidence = %f, want >= 0.5", got.Confidence)
	}
	if got.DeepfakeScore < 0 || got.DeepfakeScore > 1 {
		t.Errorf("deepfake score %f outside [0, 1]", got.DeepfakeScore)
	}
	if got.IsDeepfake != (got.DeepfakeScore > 0.5) {
		t.Errorf("is_deepfake=%t disagrees with score %f", got.IsDeepfake, got.DeepfakeScore)
	}
	if n := len(got.Landmarks); n != 8 {
		t.Errorf("landmark count = %d, want exactly 8", n)
	}

	want := face.bounds()
	const tolerance = 5
	if abs(got.BBox.XMin-want.XMin) > tolerance || abs(got.BBox.YMin-want.YMin) > tolerance ||
		abs(got.BBox.XMax-want.XMax) > tolerance || abs(got.BBox.YMax-want.YMax) > tolerance {
		t.Errorf("bounding box = %+v, want %+v within %d px", got.BBox, want, tolerance)
	}
	if got.BBox.XMin < 0 || got.BBox.YMin < 0 || got.BBox.XMax > 640 || got.BBox.YMax > 480 {
		t.Errorf("bounding box %+v exceeds image bounds", got.BBox)
	}
	if got.BBox.XMin >= got.BBox.XMax || got.BBox.YMin >= got.BBox.YMax {
		t.Errorf("bounding box %+v is degenerate", got.BBox)
	}

	if _, err := Decode(outcome.AnnotatedImage); err != nil {
		t.Errorf("annotated image does not decode: %v", err)
	}
}

func TestPipelineRunWithoutLandmarks(t *testing.T) {
	data := encodeTestJPEG(t, newFaceImage(640, 480, testFace{cx: 320, cy: 240, rx: 80, ry: 100}))
	p := newTestPipeline(7)

	outcome, err := p.Run(data, false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcome.Faces) != 1 {
		t.Fatalf("Run() found %d faces, want 1", len(outcome.Faces))
	}
	if len(outcome.Faces[0].Landmarks) != 0 {
		t.Errorf("landmarks requested off but got %d points", len(outcome.Faces[0].Landmarks))
	}
}

func TestPipelineScoreDeterministicWithFixedSeed(t *testing.T) {
	data := encodeTestJPEG(t, newFaceImage(640, 480, testFace{cx: 320, cy: 240, rx: 80, ry: 100}))

	first, err := newTestPipeline(42).Run(data, true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := newTestPipeline(42).Run(data, true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(first.Faces) != len(second.Faces) {
		t.Fatalf("face counts differ: %d vs %d", len(first.Faces), len(second.Faces))
	}
	for i := range first.Faces {
		if first.Faces[i].DeepfakeScore != second.Faces[i].DeepfakeScore {
			t.Errorf("face %d: scores differ across runs: %v vs %v",
				i, first.Faces[i].DeepfakeScore, second.Faces[i].DeepfakeScore)
		}
	}
}

func TestOutcomeFPS(t *testing.T) {
	tests := []struct {
		name           string
		processingTime float64
		want           float64
	}{
		{name: "Half second", processingTime: 0.5, want: 2},
		{name: "Two seconds", processingTime: 2, want: 0.5},
		{name: "Zero time", processingTime: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Outcome{ProcessingTime: tt.processingTime}
			if got := o.FPS(); got != tt.want {
				t.Errorf("FPS() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAnnotateLeavesSourceUntouched(t *testing.T) {
	img := newFaceImage(640, 480, testFace{cx: 320, cy: 240, rx: 80, ry: 100})
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	faces := []FaceResult{{
		BBox:          BoundingBox{XMin: 240, YMin: 140, XMax: 400, YMax: 340},
		Confidence:    0.9,
		IsDeepfake:    true,
		DeepfakeScore: 0.7,
		Landmarks:     []Landmark{{X: 300, Y: 200}, {X: 340, Y: 200}},
	}}

	annotated := Annotate(img, faces)

	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("Annotate() mutated the source image")
		}
	}

	// The box outline must actually land on the working copy.
	r, g, b := annotated.RGB(240, 240)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("expected red outline pixel at box edge, got (%d,%d,%d)", r, g, b)
	}
	r, g, b = annotated.RGB(300, 200)
	if r != 255 || g != 255 || b != 0 {
		t.Errorf("expected yellow landmark pixel, got (%d,%d,%d)", r, g, b)
	}
}
