package authService

import (
	"context"

	"FaceGuard/internal/api/auth"
	authRepository "FaceGuard/internal/api/auth/repository"
	"FaceGuard/pkg/bcrypt"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	RegisterUser(c context.Context, req auth.RegisterUserRequest) (auth.RegisterUserResponse, error)
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
}

type authService struct {
	log         *logrus.Logger
	authRepo    authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
) AuthService {
	return &authService{
		log:         log,
		authRepo:    authRepo,
		bcryptUtils: bcryptUtils,
	}
}
