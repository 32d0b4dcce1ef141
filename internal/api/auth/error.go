package auth

import (
	"net/http"

	"FaceGuard/pkg/response"
)

var (
	ErrUsernameAlreadyExists  = response.NewError(http.StatusConflict, "username already exists")
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusUnauthorized, "invalid credentials")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
)
