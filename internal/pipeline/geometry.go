package pipeline

import "math"

// RelativeBox is a detector-space bounding box expressed as fractions of the
// image dimensions, all components in [0,1].
type RelativeBox struct {
	XMin   float64
	YMin   float64
	Width  float64
	Height float64
}

// AbsoluteBox converts a relative detector box into absolute pixel
// coordinates for an image of the given dimensions. Each edge is rounded
// independently, so the pixel width can differ from round(w*width) by one.
func AbsoluteBox(r RelativeBox, width, height int) BoundingBox {
	return BoundingBox{
		XMin: roundToInt(r.XMin * float64(width)),
		YMin: roundToInt(r.YMin * float64(height)),
		XMax: roundToInt((r.XMin + r.Width) * float64(width)),
		YMax: roundToInt((r.YMin + r.Height) * float64(height)),
	}
}

// cropLocalToImage maps a crop-local relative point into absolute image
// coordinates given the crop's offset and size.
func cropLocalToImage(relX, relY float64, crop BoundingBox) Landmark {
	return Landmark{
		X: crop.XMin + roundToInt(relX*float64(crop.Width())),
		Y: crop.YMin + roundToInt(relY*float64(crop.Height())),
	}
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
