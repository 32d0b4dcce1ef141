package pipeline

// LandmarkExtractor produces the fixed eight-point landmark set for one face
// region, in absolute image coordinates. An empty result means no mesh could
// be fitted to the crop; it is an absence, not an error.
type LandmarkExtractor interface {
	Extract(img *Image, box BoundingBox) []Landmark
}

// meshIndices is the fixed, ordered index scheme of the landmark mesh:
// left-eye-outer, left-eye-inner, right-eye-inner, right-eye-outer,
// nose-tip, mouth-left, mouth-right, mouth-bottom. The order must never
// change; downstream consumers rely on it positionally.
var meshIndices = [8]int{33, 133, 362, 263, 1, 61, 291, 199}

type relPoint struct {
	x, y float64
}

// meshPoints maps each mesh index to its canonical position inside a face
// crop, expressed as fractions of the crop dimensions.
var meshPoints = map[int]relPoint{
	33:  {0.30, 0.38},
	133: {0.42, 0.38},
	362: {0.58, 0.38},
	263: {0.70, 0.38},
	1:   {0.50, 0.55},
	61:  {0.35, 0.72},
	291: {0.65, 0.72},
	199: {0.50, 0.82},
}

const minMeshCropSide = 16

// MeshExtractor fits the canonical eight-point mesh to a face crop,
// refining the eye line to the darkest row of the upper crop. It holds no
// mutable state and is safe for concurrent use.
type MeshExtractor struct{}

func NewMeshExtractor() *MeshExtractor {
	return &MeshExtractor{}
}

// Extract returns exactly eight landmarks in mesh order, or nil when the
// clipped crop is degenerate or too small to anchor a mesh. Points are
// mapped crop-local -> absolute as x = cropX + relX*cropW, rounded.
func (e *MeshExtractor) Extract(img *Image, box BoundingBox) []Landmark {
	crop := box.Clip(img.Width, img.Height)
	if crop.Area() == 0 {
		return nil
	}
	if crop.Width() < minMeshCropSide || crop.Height() < minMeshCropSide {
		return nil
	}

	eyeY := eyeLineY(img, crop)

	landmarks := make([]Landmark, 0, len(meshIndices))
	for i, idx := range meshIndices {
		p := meshPoints[idx]
		if i < 4 {
			p.y = eyeY
		}
		landmarks = append(landmarks, cropLocalToImage(p.x, p.y, crop))
	}
	return landmarks
}

// eyeLineY locates the darkest row in the upper portion of the crop, where
// the eye sockets sit on a frontal face, and returns it as a crop fraction.
// Ties resolve to the uppermost row so the result stays deterministic.
func eyeLineY(img *Image, crop BoundingBox) float64 {
	lo := crop.YMin + crop.Height()*25/100
	hi := crop.YMin + crop.Height()*55/100
	if hi <= lo {
		// Crop too short to scan; anchor to the canonical eye row.
		return meshPoints[meshIndices[0]].y
	}

	bestY := lo
	bestSum := int64(1) << 62
	for y := lo; y < hi; y++ {
		var sum int64
		for x := crop.XMin; x < crop.XMax; x++ {
			r, g, b := img.RGB(x, y)
			sum += int64(luma(r, g, b))
		}
		if sum < bestSum {
			bestSum = sum
			bestY = y
		}
	}

	return (float64(bestY) - float64(crop.YMin)) / float64(crop.Height())
}

func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
