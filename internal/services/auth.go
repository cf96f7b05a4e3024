package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/repositories"
	"licensing-system/pkg/config"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/service"
	"licensing-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (*entities.User, error)
}

type AuthService struct {
	userRepo      repositories.UserRepositoryInterface
	referenceRepo repositories.ReferenceRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	jwtService    service.JWTService
	logger        *zap.Logger
	cfg           config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	referenceRepo repositories.ReferenceRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:      userRepo,
		referenceRepo: referenceRepo,
		cacheRepo:     cacheRepo,
		jwtService:    jwtService,
		logger:        logger,
		cfg:           cfg,
	}
}

// Register creates an active CLIENT account.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error) {
	provinceID, err := checkProvince(ctx, s.referenceRepo, payload.ProvinceID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:       strings.TrimSpace(payload.Name),
		Email:      normalizeEmail(payload.Email),
		Phone:      utils.NormalizeYemeniPhoneNumber(payload.Phone),
		Password:   hash,
		Role:       constants.RoleClient,
		ProvinceID: provinceID,
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("AuthService: client registered", zap.String("userID", user.ID.String()))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := normalizeEmail(payload.Email)
	logger := s.logger.With(zap.String("email", email))

	if err := s.checkLockout(ctx, email); err != nil {
		logger.Warn("AuthService: login attempt on locked account")
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.handleFailedLoginAttempt(ctx, email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, email)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		logger.Warn("AuthService: inactive user tried to log in")
		return nil, apperrors.ErrUserInactive
	}

	s.resetLoginAttempts(ctx, email)
	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	return s.issueTokens(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		s.logger.Error("AuthService: failed to generate tokens", zap.Error(err))
		return nil, err
	}
	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		User:         dto.NewUserPublicDTO(user),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, email string) error {
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf(constants.CacheKeyLockout, email)); err == nil {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, email string) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, email)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("AuthService: failed to count login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, fmt.Sprintf(constants.CacheKeyLockout, email), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("AuthService: account locked after failed attempts", zap.String("email", email))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, email string) {
	_ = s.cacheRepo.Del(ctx,
		fmt.Sprintf(constants.CacheKeyLoginAttempts, email),
		fmt.Sprintf(constants.CacheKeyLockout, email),
	)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkProvince turns an optional province id into a column value, rejecting unknown ids.
func checkProvince(ctx context.Context, repo repositories.ReferenceRepositoryInterface, id *int) (null.Int, error) {
	if id == nil || *id == 0 {
		return null.Int{}, nil
	}
	if _, err := repo.FindProvince(ctx, *id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return null.Int{}, apperrors.NewFieldError("province_id", "unknown province")
		}
		return null.Int{}, err
	}
	return null.IntFrom(*id), nil
}
