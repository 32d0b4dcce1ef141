package detection

import (
	"time"

	"FaceGuard/internal/entity"
	"FaceGuard/internal/pipeline"
)

type DetectImageRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

type FrameRequest struct {
	Image string `json:"image" validate:"required"`
}

// DetectionResponse is the outcome of one image detection. ImageData carries
// the annotated JPEG as base64 text.
type DetectionResponse struct {
	ID             string                `json:"id"`
	Faces          []pipeline.FaceResult `json:"faces"`
	NumFaces       int                   `json:"num_faces"`
	ProcessingTime float64               `json:"processing_time"`
	ImageData      string                `json:"image_data"`
	Timestamp      time.Time             `json:"timestamp"`
}

type FrameResponse struct {
	Faces          []pipeline.FaceResult `json:"faces"`
	NumFaces       int                   `json:"num_faces"`
	ProcessingTime float64               `json:"processing_time"`
	FPS            float64               `json:"fps"`
	ImageData      string                `json:"image_data"`
}

type ListDetectionsResponse struct {
	Detections []entity.DetectionResult `json:"detections"`
	Total      int                      `json:"total"`
	Skip       int                      `json:"skip"`
	Limit      int                      `json:"limit"`
}

type ListLogsResponse struct {
	Logs  []entity.DetectionLog `json:"logs"`
	Total int                   `json:"total"`
	Skip  int                   `json:"skip"`
	Limit int                   `json:"limit"`
}

type DeleteDetectionResponse struct {
	Message string `json:"message"`
}
