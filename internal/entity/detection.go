package entity

import (
	"time"

	"FaceGuard/internal/pipeline"
)

type DetectionType string

const (
	ImageDetection  DetectionType = "image"
	WebcamDetection DetectionType = "webcam"
)

type LogType string

const (
	LogDetectionStart    LogType = "detection_start"
	LogDetectionComplete LogType = "detection_complete"
	LogDetectionError    LogType = "error"
)

// DetectionResult is one persisted pipeline invocation.
type DetectionResult struct {
	ID             string                `db:"id" json:"id"`
	Type           DetectionType         `db:"type" json:"type"`
	NumFaces       int                   `db:"num_faces" json:"num_faces"`
	NumDeepfakes   int                   `db:"num_deepfakes" json:"num_deepfakes"`
	Faces          []pipeline.FaceResult `db:"-" json:"faces"`
	ProcessingTime float64               `db:"processing_time" json:"processing_time"`
	FPS            float64               `db:"fps" json:"fps,omitempty"`
	ImageURL       string                `db:"image_url" json:"image_url,omitempty"`
	UserID         string                `db:"user_id" json:"user_id,omitempty"`
	CreatedAt      time.Time             `db:"created_at" json:"timestamp"`
}

// DetectionLog is one audit entry keyed by the detection it belongs to.
type DetectionLog struct {
	ID          string         `db:"id" json:"id"`
	DetectionID string         `db:"detection_id" json:"detection_id"`
	LogType     LogType        `db:"log_type" json:"log_type"`
	Message     string         `db:"message" json:"message"`
	Metadata    map[string]any `db:"-" json:"metadata,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"timestamp"`
}

// DetectionStats aggregates the stored detection history.
type DetectionStats struct {
	TotalDetections  int               `json:"total_detections"`
	TotalFaces       int               `json:"total_faces_detected"`
	TotalDeepfakes   int               `json:"total_deepfakes_detected"`
	DetectionsByType map[string]int    `json:"detections_by_type"`
	RecentDetections []DetectionResult `json:"recent_detections"`
}
