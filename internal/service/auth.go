package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	VerifyToken(ctx context.Context, token string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
	ListUsers(ctx context.Context) ([]*dto.UserWithReferrer, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTLDays int, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  time.Duration(tokenTTLDays) * 24 * time.Hour,
		logger:    logger,
	}
}

func userResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Username:     user.Username,
		Email:        user.Email,
		IsAdmin:      user.IsAdmin,
		ReferralCode: user.ReferralCode,
		CreatedAt:    user.CreatedAt,
	}
}

func (s *authServiceImpl) generateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, string, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, "", apperr.Validation("email, username and password are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, "", apperr.Validation("Passwords do not match")
	}

	existing, err := s.userRepo.FindByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Database("failed to check existing user", err)
	}
	if existing != nil {
		if existing.Email == req.Email {
			return nil, "", apperr.Validation("Email already exists")
		}
		return nil, "", apperr.Validation("Username already taken")
	}

	var referredBy *uint
	if req.ReferredByCode != "" {
		referrer, err := s.userRepo.FindByReferralCode(ctx, req.ReferredByCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", apperr.Validation("Invalid referral code")
			}
			return nil, "", apperr.Database("failed to resolve referral code", err)
		}
		referredBy = &referrer.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Database("failed to hash password", err)
	}

	// Referral codes are the first segment of a UUID; short enough to
	// share, unique-indexed in the table.
	referralCode := strings.SplitN(uuid.NewString(), "-", 2)[0]

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		ReferralCode: referralCode,
		ReferredBy:   referredBy,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Validation("Email or username already exists")
		}
		return nil, "", apperr.Database("failed to create user", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", apperr.Database("failed to issue token", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return userResponse(user), token, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", apperr.Validation("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("Invalid email or password")
		}
		return nil, "", apperr.Database("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", apperr.Database("failed to issue token", err)
	}

	return userResponse(user), token, nil
}

// ParseUserID validates a bearer token and returns the user id it carries.
func (s *authServiceImpl) parseUserID(token string) (uint, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.Unauthorized("invalid token claims")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, apperr.Unauthorized("invalid token claims")
	}
	return uint(id), nil
}

func (s *authServiceImpl) VerifyToken(ctx context.Context, token string) (*dto.UserResponse, error) {
	if token == "" {
		return nil, apperr.Unauthorized("missing credential")
	}

	userID, err := s.parseUserID(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Database("failed to load user", err)
	}

	return userResponse(user), nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return apperr.Validation("All fields are required")
	}
	if strings.TrimSpace(req.NewPassword) != strings.TrimSpace(req.ConfirmNewPassword) {
		return apperr.Validation("New passwords do not match")
	}
	if req.CurrentPassword == req.NewPassword {
		return apperr.Validation("New password cannot be the same as the current password")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Database("failed to load user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Database("failed to hash password", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return apperr.Database("failed to update password", err)
	}

	s.logger.Info("password changed", zap.Uint("user_id", userID))
	return nil
}

func (s *authServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserWithReferrer, error) {
	users, err := s.userRepo.FindNonAdmins(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list users", err)
	}

	referrerIDs := make([]uint, 0, len(users))
	for _, user := range users {
		if user.ReferredBy != nil {
			referrerIDs = append(referrerIDs, *user.ReferredBy)
		}
	}

	referrerNames := map[uint]string{}
	if len(referrerIDs) > 0 {
		referrers, err := s.userRepo.FindManyByID(ctx, referrerIDs)
		if err != nil {
			return nil, apperr.Database("failed to resolve referrers", err)
		}
		for _, ref := range referrers {
			referrerNames[ref.ID] = ref.Username
		}
	}

	result := make([]*dto.UserWithReferrer, len(users))
	for i, user := range users {
		entry := &dto.UserWithReferrer{UserResponse: *userResponse(user)}
		if user.ReferredBy != nil {
			entry.ReferredBy = referrerNames[*user.ReferredBy]
		}
		result[i] = entry
	}
	return result, nil
}
