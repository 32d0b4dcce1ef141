package pipeline

import (
	"math/rand"
	"sync"

	"gocv.io/x/gocv"
)

// AuthenticityScorer classifies one face region as genuine or synthetic.
// The score is not a calibrated probability from a trained model: it is a
// deterministic feature combination plus bounded noise, and callers must
// treat it as such.
type AuthenticityScorer interface {
	Score(img *Image, box BoundingBox) (bool, float64, error)
}

const (
	blurThreshold        = 100.0
	colorVarThreshold    = 500.0
	edgeDensityThreshold = 0.05
	edgeLowThreshold     = 100.0
	edgeHighThreshold    = 200.0
	classifyThreshold    = 0.5
)

// HeuristicScorer implements the documented heuristic:
// variance of the Laplacian (blur), combined HSV channel variance (color
// flatness) and dual-threshold edge density, each contributing a fixed
// weight, plus uniform jitter in [-0.1, 0.1] from a seedable source.
type HeuristicScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHeuristicScorer builds a scorer with its own jitter source. The same
// seed and pixel input reproduce bitwise-identical scores.
func NewHeuristicScorer(seed int64) *HeuristicScorer {
	return &HeuristicScorer{rng: rand.New(rand.NewSource(seed))}
}

// Score crops the face region and applies the heuristic. ErrEmptyCrop is the
// only failure mode, raised when the clipped box has zero area.
func (s *HeuristicScorer) Score(img *Image, box BoundingBox) (bool, float64, error) {
	crop := box.Clip(img.Width, img.Height)
	if crop.Area() == 0 {
		return false, 0, ErrEmptyCrop
	}

	face := img.Crop(crop)

	score := 0.0
	if laplacianVariance(face) < blurThreshold {
		score += 0.3
	}
	if hsvVariance(face) < colorVarThreshold {
		score += 0.2
	}
	if edgeDensity(face) < edgeDensityThreshold {
		score += 0.2
	}

	score += s.jitter()
	score = clampFloat(score, 0, 1)

	return score > classifyThreshold, score, nil
}

func (s *HeuristicScorer) jitter() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()*0.2 - 0.1
}

// laplacianVariance measures edge sharpness as the variance of the Laplacian
// response over the grayscale crop. Low values mean a blurred region. Crops
// too small for a kernel pass score zero.
func laplacianVariance(m *Image) float64 {
	if m.Width < 3 || m.Height < 3 {
		return 0
	}

	src, err := m.toMat()
	if err != nil {
		return 0
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	responses, err := lap.DataPtrFloat64()
	if err != nil {
		return 0
	}
	return variance(responses)
}

// hsvVariance converts the crop to HSV (OpenCV scaling: H in [0,180),
// S and V in [0,255]) and returns the variance of all channel values pooled
// together.
func hsvVariance(m *Image) float64 {
	src, err := m.toMat()
	if err != nil {
		return 0
	}
	defer src.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	data, err := hsv.DataPtrUint8()
	if err != nil {
		return 0
	}
	values := make([]float64, len(data))
	for i, v := range data {
		values[i] = float64(v)
	}
	return variance(values)
}

// edgeDensity runs a dual-threshold (100/200) Canny pass over the grayscale
// crop and returns the sum of edge-pixel values divided by the crop area.
// Edge pixels carry 255, everything else zero.
func edgeDensity(m *Image) float64 {
	if m.Width < 3 || m.Height < 3 {
		return 0
	}

	src, err := m.toMat()
	if err != nil {
		return 0
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, edgeLowThreshold, edgeHighThreshold)

	data, err := edges.DataPtrUint8()
	if err != nil {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(m.Width*m.Height)
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(values))
}
