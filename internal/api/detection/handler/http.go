package detectionHandler

import (
	detectionService "FaceGuard/internal/api/detection/service"
	"FaceGuard/internal/middleware"
	"FaceGuard/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type DetectionHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	detectionService detectionService.IDetectionService
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ds detectionService.IDetectionService,
	utils utils.IUtils,
) *DetectionHandler {
	return &DetectionHandler{
		detectionService: ds,
		log:              log,
		validator:        validator,
		middleware:       middleware,
		utils:            utils,
	}
}

func (h *DetectionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	detect := srv.Group("/detect")
	detect.Use(h.middleware.NewRateLimiter)
	detect.Post("/image", h.DetectImage)
	detect.Post("/webcam", h.DetectWebcam)
	detect.Use("/ws", wsMiddleware)
	detect.Get("/ws", websocket.New(h.handleWebSocket))

	srv.Get("/detections", h.middleware.NewTokenMiddleware, h.ListDetections)
	srv.Delete("/detections/:id", h.middleware.NewTokenMiddleware, h.DeleteDetection)
	srv.Get("/logs", h.middleware.NewTokenMiddleware, h.ListLogs)
	srv.Get("/stats", h.middleware.NewTokenMiddleware, h.GetStats)
}
