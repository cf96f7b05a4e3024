package services

import (
	"context"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"licensing-system/internal/dto"
	"licensing-system/internal/entities"
	"licensing-system/internal/repositories"
	"licensing-system/pkg/constants"
	apperrors "licensing-system/pkg/errors"
	"licensing-system/pkg/types"
	"licensing-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*entities.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

// UserService is the user administration used by the general manager.
type UserService struct {
	userRepo      repositories.UserRepositoryInterface
	referenceRepo repositories.ReferenceRepositoryInterface
	identity      *IdentityService
	logger        *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	referenceRepo repositories.ReferenceRepositoryInterface,
	identity *IdentityService,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:      userRepo,
		referenceRepo: referenceRepo,
		identity:      identity,
		logger:        logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.GetUsers(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	provinceID, err := checkProvince(ctx, s.referenceRepo, payload.ProvinceID)
	if err != nil {
		return nil, err
	}
	if err := checkRoleProvince(payload.Role, provinceID); err != nil {
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
		Role:       payload.Role,
		ProvinceID: provinceID,
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("UserService: user created",
		zap.String("userID", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return s.userRepo.FindByID(ctx, user.ID)
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, payload dto.UpdateUserDTO) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		user.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		user.Email = normalizeEmail(*payload.Email)
	}
	if payload.Phone != nil {
		user.Phone = utils.NormalizeYemeniPhoneNumber(*payload.Phone)
	}
	if payload.Password != nil {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.ProvinceID != nil {
		provinceID, err := checkProvince(ctx, s.referenceRepo, payload.ProvinceID)
		if err != nil {
			return nil, err
		}
		user.ProvinceID = provinceID
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := checkRoleProvince(user.Role, user.ProvinceID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.identity.Invalidate(ctx, id)

	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.identity.Invalidate(ctx, id)
	s.logger.Info("UserService: user deactivated", zap.String("userID", id.String()))
	return nil
}

// A branch manager without a province could never see or act on anything.
func checkRoleProvince(role constants.Role, provinceID null.Int) error {
	if role == constants.RoleBranchManager && !provinceID.Valid {
		return apperrors.NewFieldError("province_id", "is required for a branch manager")
	}
	return nil
}
