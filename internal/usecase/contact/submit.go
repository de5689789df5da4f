package contact

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/notify"
)

type Input struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type SubmitContact struct {
	repo   account.Repository
	notify *notify.Dispatcher
	log    *zap.Logger
}

func NewSubmitContact(repo account.Repository, notifier *notify.Dispatcher, log *zap.Logger) *SubmitContact {
	return &SubmitContact{
		repo:   repo,
		notify: notifier,
		log:    log.With(zap.String("usecase", "submit_contact")),
	}
}

func (uc *SubmitContact) Execute(ctx context.Context, in Input) (*models.ContactSubmission, error) {
	c := &models.ContactSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return nil, httperr.ErrValidation("contact_message_invalid", nil)
	}
	if c.Subject == "" {
		c.Subject = "General enquiry"
	}

	if err := uc.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	uc.log.Info("contact submitted", zap.Uint("id", c.ID))
	uc.notify.Dispatch(notify.RKContactSubmitted, notify.ContactEvent{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Subject: c.Subject,
		Message: c.Message,
	})

	return c, nil
}
