package authService

import (
	"context"
	"errors"
	"io"
	"testing"

	"FaceGuard/internal/api/auth"
	authRepository "FaceGuard/internal/api/auth/repository"
	"FaceGuard/internal/entity"
	"FaceGuard/pkg/bcrypt"

	"github.com/sirupsen/logrus"
)

type fakeUsers struct {
	byUsername map[string]entity.User
	created    []entity.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	if _, exists := f.byUsername[user.Username]; exists {
		return auth.ErrUsernameAlreadyExists
	}
	if f.byUsername == nil {
		f.byUsername = make(map[string]entity.User)
	}
	f.byUsername[user.Username] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (entity.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return entity.User{}, auth.ErrUserNotFound
}

type fakeAuthRepository struct {
	users *fakeUsers
}

func (f *fakeAuthRepository) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService(users *fakeUsers) AuthService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, &fakeAuthRepository{users: users}, bcrypt.New())
}

func TestRegisterUser(t *testing.T) {
	users := &fakeUsers{}
	svc := newTestService(users)

	res, err := svc.RegisterUser(context.Background(), auth.RegisterUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	if res.UserID == "" {
		t.Error("response is missing the user id")
	}

	if len(users.created) != 1 {
		t.Fatalf("created %d users, want 1", len(users.created))
	}
	stored := users.created[0]
	if stored.Password == "correct horse battery" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.New().ComparePassword(stored.Password, "correct horse battery"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	users := &fakeUsers{}
	svc := newTestService(users)

	req := auth.RegisterUserRequest{Username: "bob", Email: "bob@example.com", Password: "hunter2hunter2"}
	if _, err := svc.RegisterUser(context.Background(), req); err != nil {
		t.Fatalf("first RegisterUser() error = %v", err)
	}
	if _, err := svc.RegisterUser(context.Background(), req); !errors.Is(err, auth.ErrUsernameAlreadyExists) {
		t.Errorf("second RegisterUser() error = %v, want ErrUsernameAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	users := &fakeUsers{}
	svc := newTestService(users)

	if _, err := svc.RegisterUser(context.Background(), auth.RegisterUserRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "s3cret-passw0rd",
	}); err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "Valid credentials", username: "carol", password: "s3cret-passw0rd"},
		{name: "Wrong password", username: "carol", password: "wrong", wantErr: auth.ErrInvalidEmailOrPassword},
		{name: "Unknown user", username: "mallory", password: "s3cret-passw0rd", wantErr: auth.ErrInvalidEmailOrPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), auth.LoginUserRequest{
				Username: tt.username,
				Password: tt.password,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if res.AccessToken == "" {
				t.Error("Login() returned empty access token")
			}
			if res.TokenType != "bearer" {
				t.Errorf("TokenType = %q, want bearer", res.TokenType)
			}
			if res.User.Username != "carol" {
				t.Errorf("User.Username = %q, want carol", res.User.Username)
			}
		})
	}
}
