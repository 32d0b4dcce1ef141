package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when the input bytes cannot be parsed as an image.
	ErrDecode = errors.New("invalid image data")
	// ErrEmptyCrop is returned by the scorer when a face box has zero area
	// after clipping to the image bounds.
	ErrEmptyCrop = errors.New("face crop has zero area")
)

// BoundingBox is an axis-aligned rectangle in absolute pixel coordinates.
// XMin < XMax and YMin < YMax hold for every non-degenerate box.
type BoundingBox struct {
	XMin int
	YMin int
	XMax int
	YMax int
}

func (b BoundingBox) Width() int {
	return b.XMax - b.XMin
}

func (b BoundingBox) Height() int {
	return b.YMax - b.YMin
}

func (b BoundingBox) Area() int {
	return b.Width() * b.Height()
}

// Clip constrains the box to an image of the given dimensions. The result
// may be degenerate (zero area) when the box lies outside the image.
func (b BoundingBox) Clip(width, height int) BoundingBox {
	c := b
	if c.XMin < 0 {
		c.XMin = 0
	}
	if c.XMin > width {
		c.XMin = width
	}
	if c.YMin < 0 {
		c.YMin = 0
	}
	if c.YMin > height {
		c.YMin = height
	}
	if c.XMax > width {
		c.XMax = width
	}
	if c.YMax > height {
		c.YMax = height
	}
	if c.XMax < c.XMin {
		c.XMax = c.XMin
	}
	if c.YMax < c.YMin {
		c.YMax = c.YMin
	}
	return c
}

// MarshalJSON encodes the box as the 4-integer array [x_min, y_min, x_max, y_max].
func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.XMin, b.YMin, b.XMax, b.YMax})
}

func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("bounding box must be a 4-integer array: %w", err)
	}
	b.XMin, b.YMin, b.XMax, b.YMax = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// Landmark is a single anatomical reference point in absolute pixel
// coordinates relative to the full image, not the face crop.
type Landmark struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FaceResult is the per-face output of one pipeline invocation.
// IsDeepfake is always DeepfakeScore > 0.5, and Landmarks holds either zero
// or exactly eight points in the fixed anatomical order.
type FaceResult struct {
	BBox          BoundingBox `json:"bbox"`
	Confidence    float64     `json:"confidence"`
	IsDeepfake    bool        `json:"is_deepfake"`
	DeepfakeScore float64     `json:"deepfake_score"`
	Landmarks     []Landmark  `json:"landmarks"`
}

// Outcome is the result of a single end-to-end pipeline invocation.
// It is immutable once returned from Run.
type Outcome struct {
	Faces          []FaceResult
	AnnotatedImage []byte
	ProcessingTime float64
}

// FPS derives the effective frames-per-second figure for streaming callers.
func (o *Outcome) FPS() float64 {
	if o.ProcessingTime > 0 {
		return 1.0 / o.ProcessingTime
	}
	return 0
}
