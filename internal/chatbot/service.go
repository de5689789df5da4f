package chatbot

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/domain/account"
	"github.com/BruksfildServices01/salon-booking/internal/domain/chat"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	MaxMessageLength = 2000
	titleLength      = 50
)

type SendInput struct {
	SessionID  uint
	GuestToken string
	Message    string
}

type SendResult struct {
	Session *models.ChatSession `json:"session"`
	Message *models.ChatMessage `json:"message"`
	Reply   *models.ChatMessage `json:"reply"`
}

type Service struct {
	repo chat.Repository
	gen  Generator
	log  *zap.Logger
}

// NewService accepts a nil generator; every reply is then the fallback.
func NewService(repo chat.Repository, gen Generator, log *zap.Logger) *Service {
	return &Service{repo: repo, gen: gen, log: log.With(zap.String("usecase", "chatbot"))}
}

func (s *Service) Send(
	ctx context.Context,
	principal *account.Principal,
	in SendInput,
) (*SendResult, error) {

	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil, httperr.ErrValidation("empty_message", nil)
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return nil, httperr.ErrValidation("invalid_request", map[string]string{"message": "max=2000"})
	}

	session, err := s.resolveSession(ctx, principal, in, text)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.RecentMessages(ctx, session.ID, chat.HistoryLimit)
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{SessionID: session.ID, Role: models.ChatRoleUser, Content: text}
	if err := s.repo.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	reply := &models.ChatMessage{
		SessionID: session.ID,
		Role:      models.ChatRoleAssistant,
		Content:   s.generate(ctx, session.ID, history, text),
	}
	if err := s.repo.AppendMessage(ctx, reply); err != nil {
		return nil, err
	}

	return &SendResult{Session: session, Message: userMsg, Reply: reply}, nil
}

// Messages returns the messages newer than afterID, for polling clients.
func (s *Service) Messages(
	ctx context.Context,
	principal *account.Principal,
	sessionID uint,
	guestToken string,
	afterID uint,
) ([]models.ChatMessage, error) {

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !canAccess(principal, session, guestToken) {
		return nil, httperr.ErrForbidden("forbidden")
	}
	return s.repo.MessagesAfter(ctx, session.ID, afterID)
}

func (s *Service) resolveSession(
	ctx context.Context,
	principal *account.Principal,
	in SendInput,
	text string,
) (*models.ChatSession, error) {

	if in.SessionID != 0 {
		session, err := s.repo.GetSession(ctx, in.SessionID)
		if err != nil {
			return nil, err
		}
		if !canAccess(principal, session, in.GuestToken) {
			return nil, httperr.ErrForbidden("forbidden")
		}
		return session, nil
	}

	session := &models.ChatSession{Title: title(text)}
	if principal != nil {
		session.UserID = &principal.UserID
	} else {
		session.GuestToken = uuid.NewString()
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// generate never fails: any model error degrades to the fallback reply.
func (s *Service) generate(
	ctx context.Context,
	sessionID uint,
	history []models.ChatMessage,
	text string,
) string {

	if s.gen == nil {
		return FallbackReply
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		s.log.Warn("load services for prompt", zap.Error(err))
	}
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		s.log.Warn("load branches for prompt", zap.Error(err))
	}

	turns := make([]Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}

	reply, err := s.gen.Generate(ctx, BuildSystemPrompt(services, branches), turns, text)
	if err != nil {
		s.log.Warn("generator failed, using fallback", zap.Uint("session_id", sessionID), zap.Error(err))
		return FallbackReply
	}
	return reply
}

func canAccess(principal *account.Principal, s *models.ChatSession, guestToken string) bool {
	if principal != nil && s.UserID != nil && *s.UserID == principal.UserID {
		return true
	}
	return s.GuestToken != "" && s.GuestToken == guestToken
}

func title(text string) string {
	if utf8.RuneCountInString(text) <= titleLength {
		return text
	}
	return string([]rune(text)[:titleLength]) + "…"
}
