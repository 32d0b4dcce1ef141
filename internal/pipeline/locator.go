package pipeline

import "sort"

// Candidate is one detector hit: a relative bounding box plus a detection
// confidence in [0,1].
type Candidate struct {
	Box        RelativeBox
	Confidence float64
}

// FaceLocator finds candidate face regions in a decoded image. Locators must
// be deterministic for a given pixel grid and safe for concurrent use.
type FaceLocator interface {
	Locate(img *Image) []Candidate
}

const (
	defaultMinConfidence = 0.5
	maxFaces             = 10
	minRegionSide        = 16
	minRegionAreaFrac    = 0.002
)

// SkinRegionLocator detects faces by segmenting skin-tone pixels and growing
// connected regions. It carries no trainable state; construction-time
// configuration is read-only afterwards, so one instance serves all requests.
type SkinRegionLocator struct {
	minConfidence float64
}

func NewSkinRegionLocator(minConfidence float64) *SkinRegionLocator {
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}
	return &SkinRegionLocator{minConfidence: minConfidence}
}

// Locate scans the pixel grid and returns face candidates above the
// configured confidence, largest first, capped at ten. No faces found is an
// empty slice, never an error.
func (l *SkinRegionLocator) Locate(img *Image) []Candidate {
	mask := skinMask(img)
	regions := connectedRegions(mask, img.Width, img.Height)

	minArea := int(minRegionAreaFrac * float64(img.Width*img.Height))
	if minArea < minRegionSide*minRegionSide {
		minArea = minRegionSide * minRegionSide
	}

	candidates := make([]Candidate, 0, len(regions))
	for _, r := range regions {
		w := r.box.Width()
		h := r.box.Height()
		if w < minRegionSide || h < minRegionSide || r.box.Area() < minArea {
			continue
		}

		aspect := float64(h) / float64(w)
		if aspect < 0.6 || aspect > 2.2 {
			continue
		}

		conf := regionConfidence(r.pixels, r.box.Area())
		if conf < l.minConfidence {
			continue
		}

		candidates = append(candidates, Candidate{
			Box: RelativeBox{
				XMin:   float64(r.box.XMin) / float64(img.Width),
				YMin:   float64(r.box.YMin) / float64(img.Height),
				Width:  float64(w) / float64(img.Width),
				Height: float64(h) / float64(img.Height),
			},
			Confidence: conf,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ai := candidates[i].Box.Width * candidates[i].Box.Height
		aj := candidates[j].Box.Width * candidates[j].Box.Height
		return ai > aj
	})

	if len(candidates) > maxFaces {
		candidates = candidates[:maxFaces]
	}
	return candidates
}

// regionConfidence maps the fill ratio of a region's bounding box onto [0,1].
// A solid elliptical face fills roughly pi/4 of its box, which lands well
// above the default 0.5 threshold.
func regionConfidence(pixels, boxArea int) float64 {
	if boxArea <= 0 {
		return 0
	}
	fill := float64(pixels) / float64(boxArea)
	return clampFloat(0.35+0.6*fill, 0, 1)
}

// skinMask applies the classic RGB skin-tone rule per pixel.
func skinMask(img *Image) []bool {
	mask := make([]bool, img.Width*img.Height)
	for i := 0; i < len(mask); i++ {
		r := int(img.Pix[i*3])
		g := int(img.Pix[i*3+1])
		b := int(img.Pix[i*3+2])

		maxC := r
		if g > maxC {
			maxC = g
		}
		if b > maxC {
			maxC = b
		}
		minC := r
		if g < minC {
			minC = g
		}
		if b < minC {
			minC = b
		}

		diff := r - g
		if diff < 0 {
			diff = -diff
		}

		mask[i] = r > 95 && g > 40 && b > 20 &&
			maxC-minC > 15 && diff > 15 && r > g && r > b
	}
	return mask
}

type region struct {
	box    BoundingBox
	pixels int
}

// connectedRegions groups 4-connected mask pixels with an iterative flood
// fill and returns the bounding box and pixel count of each component.
func connectedRegions(mask []bool, width, height int) []region {
	visited := make([]bool, len(mask))
	var regions []region
	stack := make([]int, 0, 1024)

	for start := 0; start < len(mask); start++ {
		if !mask[start] || visited[start] {
			continue
		}

		r := region{box: BoundingBox{
			XMin: start % width, YMin: start / width,
			XMax: start%width + 1, YMax: start/width + 1,
		}}

		stack = append(stack[:0], start)
		visited[start] = true

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x := idx % width
			y := idx / width

			r.pixels++
			if x < r.box.XMin {
				r.box.XMin = x
			}
			if y < r.box.YMin {
				r.box.YMin = y
			}
			if x+1 > r.box.XMax {
				r.box.XMax = x + 1
			}
			if y+1 > r.box.YMax {
				r.box.YMax = y + 1
			}

			if x > 0 && mask[idx-1] && !visited[idx-1] {
				visited[idx-1] = true
				stack = append(stack, idx-1)
			}
			if x < width-1 && mask[idx+1] && !visited[idx+1] {
				visited[idx+1] = true
				stack = append(stack, idx+1)
			}
			if y > 0 && mask[idx-width] && !visited[idx-width] {
				visited[idx-width] = true
				stack = append(stack, idx-width)
			}
			if y < height-1 && mask[idx+width] && !visited[idx+width] {
				visited[idx+width] = true
				stack = append(stack, idx+width)
			}
		}

		regions = append(regions, r)
	}
	return regions
}
