package detection

import (
	"net/http"

	"FaceGuard/pkg/response"
)

var (
	ErrInvalidImage        = response.NewError(http.StatusBadRequest, "invalid or undecodable image")
	ErrNoImageData         = response.NewError(http.StatusBadRequest, "no image data provided")
	ErrDetectionNotFound   = response.NewError(http.StatusNotFound, "detection not found")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
