package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/media"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
)

const MinPasswordLength = 8

type UpdateInput struct {
	Name  *string
	Phone *string
}

type ChangePasswordInput struct {
	Current string
	New     string
}

// Service groups the account self-service operations.
type Service struct {
	repo     account.Repository
	uploader storage.Uploader
	audit    *audit.Dispatcher
	log      *zap.Logger
}

// NewService accepts a nil uploader; avatar uploads then fail with
// storage_not_configured.
func NewService(
	repo account.Repository,
	uploader storage.Uploader,
	auditor *audit.Dispatcher,
	log *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		audit:    auditor,
		log:      log.With(zap.String("usecase", "profile")),
	}
}

func (s *Service) Get(ctx context.Context, principal *account.Principal) (*models.User, error) {
	if principal == nil {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}
	return s.repo.GetUser(ctx, principal.UserID)
}

func (s *Service) Update(
	ctx context.Context,
	principal *account.Principal,
	in UpdateInput,
) (*models.User, error) {

	u, err := s.Get(ctx, principal)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrValidation("invalid_request", map[string]string{"name": "required"})
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	principal *account.Principal,
	in ChangePasswordInput,
) error {

	u, err := s.Get(ctx, principal)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Current)) != nil {
		return httperr.ErrBusiness("invalid_password")
	}
	if len(in.New) < MinPasswordLength {
		return httperr.ErrValidation("invalid_request", map[string]string{"new_password": "min=8"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.New), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return err
	}

	s.audit.Dispatch(audit.Event{
		UserID: &u.ID,
		Action: "password_changed",
		Entity: "user",
	})
	return nil
}

// UploadAvatar stores the image as WebP and points the profile at it.
func (s *Service) UploadAvatar(
	ctx context.Context,
	principal *account.Principal,
	file io.Reader,
) (*models.User, error) {

	u, err := s.Get(ctx, principal)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, httperr.ErrBusiness("storage_not_configured")
	}

	body, err := media.EncodeAvatar(file)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) {
			return nil, httperr.ErrValidation("invalid_image", nil)
		}
		return nil, err
	}

	key := fmt.Sprintf("avatars/%d/%s.webp", u.ID, uuid.NewString())
	url, err := s.uploader.Put(ctx, key, media.AvatarContentType, body)
	if err != nil {
		return nil, err
	}

	u.AvatarURL = url
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("avatar updated", zap.Uint("user_id", u.ID), zap.String("key", key))
	return u, nil
}
