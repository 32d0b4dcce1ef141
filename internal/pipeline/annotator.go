package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	colorReal     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colorFake     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colorLandmark = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

const (
	boxThickness   = 2
	landmarkRadius = 2
	labelScale     = 0.5
	jpegQuality    = 90
)

// Annotate renders detection overlays onto a working copy of the image:
// a rectangle per face colored by classification, a confidence/score label
// above it, and a marker per landmark. The input image is left untouched.
func Annotate(img *Image, faces []FaceResult) *Image {
	mat, err := img.toMat()
	if err != nil {
		return img
	}
	defer mat.Close()

	for _, face := range faces {
		col := colorReal
		verdict := "REAL"
		if face.IsDeepfake {
			col = colorFake
			verdict = "FAKE"
		}

		box := face.BBox.Clip(img.Width, img.Height)
		gocv.Rectangle(&mat, image.Rect(box.XMin, box.YMin, box.XMax, box.YMax), col, boxThickness)

		label := fmt.Sprintf("Conf: %.2f | %s: %.2f", face.Confidence, verdict, face.DeepfakeScore)
		gocv.PutText(&mat, label, image.Pt(box.XMin, box.YMin-10), gocv.FontHersheySimplex, labelScale, col, 1)

		for _, lm := range face.Landmarks {
			gocv.Circle(&mat, image.Pt(lm.X, lm.Y), landmarkRadius, colorLandmark, -1)
		}
	}

	return fromMat(mat)
}
