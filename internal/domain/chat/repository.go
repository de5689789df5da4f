package chat

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// HistoryLimit is how many previous messages are replayed to the model.
const HistoryLimit = 10

type Repository interface {
	GetSession(ctx context.Context, id uint) (*models.ChatSession, error)
	CreateSession(ctx context.Context, s *models.ChatSession) error
	AppendMessage(ctx context.Context, m *models.ChatMessage) error
	RecentMessages(ctx context.Context, sessionID uint, limit int) ([]models.ChatMessage, error)
	MessagesAfter(ctx context.Context, sessionID uint, afterID uint) ([]models.ChatMessage, error)

	// Salon context for the system prompt.
	ListServices(ctx context.Context) ([]models.Service, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
}
