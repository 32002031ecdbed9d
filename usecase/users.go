package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UsersService struct {
	UsersRepo *repository.UserRepo
}

func NewUsersService(repo *repository.UserRepo) *UsersService {
	return &UsersService{UsersRepo: repo}
}

func (svc *UsersService) RegisterUser(ctx context.Context, user *model.User, password string) error {
	if existing, err := svc.UsersRepo.FindUserByUsername(ctx, user.Username); err != nil {
		return err
	} else if existing != nil {
		return ErrUsernameTaken
	}
	if existing, err := svc.UsersRepo.FindUserByEmail(ctx, user.Email); err != nil {
		return err
	} else if existing != nil {
		return ErrEmailTaken
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return err
	}

	user.UserID = utils.GenerateUserID()
	user.Password = hashed
	user.CreatedAt = time.Now()

	return svc.UsersRepo.AddUser(ctx, user)
}

func (svc *UsersService) AuthenticateUser(ctx context.Context, username, password string) (*model.User, error) {
	user, err := svc.UsersRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !services.ComparePasswords(user.Password, password) {
		utils.TrackAuthAttempt("failure", "login")
		return nil, ErrInvalidCredentials
	}
	utils.TrackAuthAttempt("success", "login")
	return user, nil
}

// AuthenticateByPhone resolves a user after their phone code has been
// verified by the verification service.
func (svc *UsersService) AuthenticateByPhone(ctx context.Context, phone string) (*model.User, error) {
	user, err := svc.UsersRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "phone")
		return nil, ErrInvalidCredentials
	}
	utils.TrackAuthAttempt("success", "phone")
	return user, nil
}

// IssueTokens generates and persists a fresh access/refresh token pair.
func (svc *UsersService) IssueTokens(ctx context.Context, user *model.User) (string, string, error) {
	accessToken, err := services.GenerateJWT(user.UserID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		return "", "", err
	}
	if err := svc.UsersRepo.UpdateUserTokens(ctx, user.UserID, accessToken, refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
