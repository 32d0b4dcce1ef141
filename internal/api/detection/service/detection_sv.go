package detectionService

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"FaceGuard/internal/api/detection"
	"FaceGuard/internal/entity"
	"FaceGuard/internal/pipeline"
	contextPkg "FaceGuard/pkg/context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (s *detectionService) DetectImage(c context.Context, imageBytes []byte, renderLandmarks bool, userID string) (detection.DetectionResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	detectionID := uuid.New().String()

	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return detection.DetectionResponse{}, err
	}

	s.writeLog(c, repo.Logs.CreateLog, detectionID, entity.LogDetectionStart, "image detection started", map[string]any{
		"type":       string(entity.ImageDetection),
		"image_size": len(imageBytes),
	})

	outcome, err := s.pipeline.Run(imageBytes, renderLandmarks)
	if err != nil {
		s.writeLog(c, repo.Logs.CreateLog, detectionID, entity.LogDetectionError, err.Error(), nil)

		if errors.Is(err, pipeline.ErrDecode) {
			s.log.WithFields(logrus.Fields{
				"request_id":   requestID,
				"detection_id": detectionID,
			}).Warn("Rejected undecodable image")
			return detection.DetectionResponse{}, detection.ErrInvalidImage
		}

		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"detection_id": detectionID,
			"error":        err.Error(),
		}).Error("Detection pipeline failed")
		return detection.DetectionResponse{}, err
	}

	var imageURL string
	if s.s3Client != nil {
		imageURL, err = s.s3Client.UploadBytes(fmt.Sprintf("detections/%s.jpg", detectionID), outcome.AnnotatedImage, "image/jpeg")
		if err != nil {
			// Archival is best effort; the result row still persists.
			s.log.WithFields(logrus.Fields{
				"request_id":   requestID,
				"detection_id": detectionID,
				"error":        err.Error(),
			}).Warn("Failed to upload annotated image")
			imageURL = ""
		}
	}

	result := entity.DetectionResult{
		ID:             detectionID,
		Type:           entity.ImageDetection,
		NumFaces:       len(outcome.Faces),
		NumDeepfakes:   countDeepfakes(outcome.Faces),
		Faces:          outcome.Faces,
		ProcessingTime: outcome.ProcessingTime,
		ImageURL:       imageURL,
		UserID:         userID,
		CreatedAt:      time.Now(),
	}

	if err := repo.Results.CreateResult(c, result); err != nil {
		return detection.DetectionResponse{}, err
	}

	s.writeLog(c, repo.Logs.CreateLog, detectionID, entity.LogDetectionComplete, "image detection completed", map[string]any{
		"num_faces":       result.NumFaces,
		"num_deepfakes":   result.NumDeepfakes,
		"processing_time": result.ProcessingTime,
	})

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"detection_id":  detectionID,
		"num_faces":     result.NumFaces,
		"num_deepfakes": result.NumDeepfakes,
	}).Info("Image detection completed")

	return detection.DetectionResponse{
		ID:             detectionID,
		Faces:          outcome.Faces,
		NumFaces:       len(outcome.Faces),
		ProcessingTime: outcome.ProcessingTime,
		ImageData:      base64.StdEncoding.EncodeToString(outcome.AnnotatedImage),
		Timestamp:      result.CreatedAt,
	}, nil
}

func (s *detectionService) DetectFrame(c context.Context, frame string) (detection.FrameResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	imageBytes, err := s.utils.DecodeBase64Frame(frame)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to decode webcam frame")
		return detection.FrameResponse{}, detection.ErrInvalidImage
	}

	return s.runFrame(imageBytes)
}

// ProcessFrame analyzes one binary websocket frame. Webcam frames are
// transient and never persisted.
func (s *detectionService) ProcessFrame(message []byte) (detection.FrameResponse, error) {
	return s.runFrame(message)
}

func (s *detectionService) runFrame(imageBytes []byte) (detection.FrameResponse, error) {
	outcome, err := s.pipeline.Run(imageBytes, true)
	if err != nil {
		if errors.Is(err, pipeline.ErrDecode) {
			return detection.FrameResponse{}, detection.ErrInvalidImage
		}
		return detection.FrameResponse{}, err
	}

	return detection.FrameResponse{
		Faces:          outcome.Faces,
		NumFaces:       len(outcome.Faces),
		ProcessingTime: outcome.ProcessingTime,
		FPS:            outcome.FPS(),
		ImageData:      base64.StdEncoding.EncodeToString(outcome.AnnotatedImage),
	}, nil
}

// writeLog persists one audit entry; a failed write is logged and swallowed
// so the detection itself is never blocked on audit.
func (s *detectionService) writeLog(c context.Context, create func(context.Context, entity.DetectionLog) error, detectionID string, logType entity.LogType, message string, metadata map[string]any) {
	entry := entity.DetectionLog{
		ID:          uuid.New().String(),
		DetectionID: detectionID,
		LogType:     logType,
		Message:     message,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}

	if err := create(c, entry); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   contextPkg.GetRequestID(c),
			"detection_id": detectionID,
			"log_type":     string(logType),
			"error":        err.Error(),
		}).Warn("Failed to persist detection log")
	}
}

func countDeepfakes(faces []pipeline.FaceResult) int {
	var n int
	for _, f := range faces {
		if f.IsDeepfake {
			n++
		}
	}
	return n
}
