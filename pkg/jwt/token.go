package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"FaceGuard/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const accessTokenSecretEnv = "JWT_ACCESS_TOKEN_SECRET"

// Sign issues an HS256 access token carrying the given claims plus an
// expiry. Returns the token and its unix expiry timestamp.
func Sign(data map[string]interface{}, expiresIn time.Duration) (string, int64, error) {
	secret := os.Getenv(accessTokenSecretEnv)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", accessTokenSecretEnv)
	}

	expiredAt := time.Now().Add(expiresIn).Unix()

	claims := jwt.MapClaims{
		"exp":           expiredAt,
		"authorization": true,
	}
	for k, v := range data {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// VerifyTokenHeader validates the Bearer token on the request and returns
// the parsed token.
func VerifyTokenHeader(c *fiber.Ctx) (*jwt.Token, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, errors.New("empty Authorization header")
	}

	parts := strings.Split(header, "Bearer ")
	if len(parts) != 2 {
		return nil, errors.New("invalid Authorization format")
	}

	accessToken := strings.TrimSpace(parts[1])
	if accessToken == "" {
		return nil, errors.New("empty token")
	}

	secret := os.Getenv(accessTokenSecretEnv)
	if secret == "" {
		return nil, errors.New("JWT secret not configured")
	}

	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals("user").(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}
	return user, nil
}
