package detectionHandler

import (
	"time"

	"FaceGuard/internal/api/detection"
	contextPkg "FaceGuard/pkg/context"
	"FaceGuard/pkg/handlerUtil"
	jwtPkg "FaceGuard/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// userID resolves the authenticated user when the token middleware ran;
// anonymous detections persist without an owner.
func (h *DetectionHandler) userID(ctx *fiber.Ctx) string {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return ""
	}
	return user.ID
}

func (h *DetectionHandler) ListDetections(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 50)

	res, err := h.detectionService.ListDetections(c, skip, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_detections")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *DetectionHandler) DeleteDetection(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if err := h.detectionService.DeleteDetection(c, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_detection")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, detection.DeleteDetectionResponse{
			Message: "detection deleted",
		})
	}
}

func (h *DetectionHandler) ListLogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", 50)

	res, err := h.detectionService.ListLogs(c, skip, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_logs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *DetectionHandler) GetStats(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	stats, err := h.detectionService.GetStats(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_stats")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, stats)
	}
}
