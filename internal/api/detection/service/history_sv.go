package detectionService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"FaceGuard/internal/api/detection"
	"FaceGuard/internal/entity"
	contextPkg "FaceGuard/pkg/context"
	"FaceGuard/pkg/redis"

	"github.com/sirupsen/logrus"
)

const (
	statsCacheKey = "detections:stats"
	statsCacheTTL = 30 * time.Second
)

func (s *detectionService) ListDetections(c context.Context, skip, limit int) (detection.ListDetectionsResponse, error) {
	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return detection.ListDetectionsResponse{}, err
	}

	results, total, err := repo.Results.ListResults(c, skip, limit)
	if err != nil {
		return detection.ListDetectionsResponse{}, err
	}

	return detection.ListDetectionsResponse{
		Detections: results,
		Total:      total,
		Skip:       skip,
		Limit:      limit,
	}, nil
}

func (s *detectionService) DeleteDetection(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Results.DeleteResult(c, id); err != nil {
		return err
	}

	if s.s3Client != nil {
		if err := s.s3Client.DeleteFile(fmt.Sprintf("detections/%s.jpg", id)); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":   requestID,
				"detection_id": id,
				"error":        err.Error(),
			}).Warn("Failed to delete archived annotated image")
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"detection_id": id,
	}).Info("Detection deleted")

	return nil
}

func (s *detectionService) ListLogs(c context.Context, skip, limit int) (detection.ListLogsResponse, error) {
	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return detection.ListLogsResponse{}, err
	}

	logs, total, err := repo.Logs.ListLogs(c, skip, limit)
	if err != nil {
		return detection.ListLogsResponse{}, err
	}

	return detection.ListLogsResponse{
		Logs:  logs,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

func (s *detectionService) GetStats(c context.Context) (entity.DetectionStats, error) {
	requestID := contextPkg.GetRequestID(c)

	if s.redisServer != nil {
		cached, err := s.redisServer.GetCache(c, statsCacheKey)
		if err == nil {
			var stats entity.DetectionStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Stats cache read failed")
		}
	}

	repo, err := s.detectionRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.DetectionStats{}, err
	}

	stats, err := repo.Results.GetStats(c)
	if err != nil {
		return entity.DetectionStats{}, err
	}

	if s.redisServer != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.redisServer.SetCache(c, statsCacheKey, string(payload), statsCacheTTL); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Stats cache write failed")
			}
		}
	}

	return stats, nil
}
