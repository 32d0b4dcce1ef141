package detectionService

import (
	"context"

	"FaceGuard/internal/api/detection"
	detectionRepository "FaceGuard/internal/api/detection/repository"
	"FaceGuard/internal/entity"
	"FaceGuard/internal/pipeline"
	"FaceGuard/pkg/redis"
	"FaceGuard/pkg/s3"
	"FaceGuard/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Runner is the face analysis entrypoint the service drives. It is satisfied
// by *pipeline.Pipeline and stubbed in tests.
type Runner interface {
	Run(imageBytes []byte, extractLandmarks bool) (*pipeline.Outcome, error)
}

type IDetectionService interface {
	DetectImage(c context.Context, imageBytes []byte, renderLandmarks bool, userID string) (detection.DetectionResponse, error)
	DetectFrame(c context.Context, frame string) (detection.FrameResponse, error)
	ProcessFrame(message []byte) (detection.FrameResponse, error)
	ListDetections(c context.Context, skip, limit int) (detection.ListDetectionsResponse, error)
	DeleteDetection(c context.Context, id string) error
	ListLogs(c context.Context, skip, limit int) (detection.ListLogsResponse, error)
	GetStats(c context.Context) (entity.DetectionStats, error)
}

type detectionService struct {
	log           *logrus.Logger
	detectionRepo detectionRepository.Repository
	pipeline      Runner
	redisServer   redis.IRedis
	s3Client      s3.ItfS3
	utils         utils.IUtils
}

func New(
	log *logrus.Logger,
	detectionRepo detectionRepository.Repository,
	pipeline Runner,
	redisServer redis.IRedis,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IDetectionService {
	return &detectionService{
		log:           log,
		detectionRepo: detectionRepo,
		pipeline:      pipeline,
		redisServer:   redisServer,
		s3Client:      s3Client,
		utils:         utils,
	}
}
