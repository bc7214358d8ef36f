package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/dto"
	"github.com/lshigami/Surveyor/internal/model"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Identity is the caller as asserted by the identity provider.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type UserService interface {
	UpsertFromIdentity(ctx context.Context, id Identity) (*dto.UserResponseDTO, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponseDTO, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UpsertFromIdentity(ctx context.Context, id Identity) (*dto.UserResponseDTO, error) {
	if strings.TrimSpace(id.Subject) == "" {
		return nil, apperror.Validation("invalid identity", apperror.FieldError{Field: "sub", Message: "must not be blank"})
	}
	user := model.User{
		ID:              id.Subject,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
	}
	if email := strings.TrimSpace(id.Email); email != "" {
		owner, err := s.userRepo.FindByEmail(ctx, email)
		switch {
		case err == nil && owner.ID != id.Subject:
			log.Warn().Str("userID", id.Subject).Str("ownerID", owner.ID).Msg("UpsertFromIdentity: email already linked to another user")
			return nil, apperror.Conflict("email is already linked to another account")
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			log.Error().Err(err).Str("userID", id.Subject).Msg("UpsertFromIdentity: failed to look up email")
			return nil, storeError(err, "user")
		}
		user.Email = &email
	}
	if err := s.userRepo.Upsert(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email is already linked to another account")
		}
		log.Error().Err(err).Str("userID", id.Subject).Msg("UpsertFromIdentity: failed to upsert user")
		return nil, storeError(err, "user")
	}
	return s.GetUser(ctx, user.ID)
}

func (s *userService) GetUser(ctx context.Context, userID string) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return toUserDTO(user), nil
}
