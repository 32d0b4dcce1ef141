// Package pipeline implements the face-analysis core: decode, face location,
// landmark extraction, authenticity scoring and annotation. Every invocation
// is a self-contained CPU-bound computation over function-local buffers; the
// locator, extractor and scorer are configured once at startup and only ever
// read afterwards, so a single Pipeline serves concurrent requests without
// locking.
package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Pipeline struct {
	locator   FaceLocator
	landmarks LandmarkExtractor
	scorer    AuthenticityScorer
	log       *logrus.Logger
}

func New(locator FaceLocator, landmarks LandmarkExtractor, scorer AuthenticityScorer, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		locator:   locator,
		landmarks: landmarks,
		scorer:    scorer,
		log:       log,
	}
}

// NewDefault wires the built-in skin-region locator, mesh extractor and
// heuristic scorer. The seed controls only the scorer's jitter term.
func NewDefault(seed int64, log *logrus.Logger) *Pipeline {
	return New(
		NewSkinRegionLocator(defaultMinConfidence),
		NewMeshExtractor(),
		NewHeuristicScorer(seed),
		log,
	)
}

// Run executes one full invocation: decode, locate, per-face landmarks and
// score, annotate, and wall-clock timing around the whole sequence. A decode
// failure aborts with ErrDecode; a per-face scoring failure degrades that
// face to empty landmarks and a zero score instead of failing the request.
func (p *Pipeline) Run(imageBytes []byte, extractLandmarks bool) (*Outcome, error) {
	start := time.Now()

	img, err := Decode(imageBytes)
	if err != nil {
		return nil, err
	}

	candidates := p.locator.Locate(img)

	faces := make([]FaceResult, 0, len(candidates))
	for _, c := range candidates {
		box := AbsoluteBox(c.Box, img.Width, img.Height).Clip(img.Width, img.Height)

		face := FaceResult{
			BBox:       box,
			Confidence: c.Confidence,
			Landmarks:  []Landmark{},
		}

		isFake, score, err := p.scorer.Score(img, box)
		if err != nil {
			p.log.WithFields(logrus.Fields{
				"bbox":  box,
				"error": err.Error(),
			}).Warn("Face scoring degraded")
		} else {
			face.IsDeepfake = isFake
			face.DeepfakeScore = score
		}

		if extractLandmarks {
			if lms := p.landmarks.Extract(img, box); lms != nil {
				face.Landmarks = lms
			}
		}

		faces = append(faces, face)
	}

	annotated := Annotate(img, faces)
	encoded, err := EncodeJPEG(annotated, jpegQuality)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Faces:          faces,
		AnnotatedImage: encoded,
		ProcessingTime: time.Since(start).Seconds(),
	}, nil
}
