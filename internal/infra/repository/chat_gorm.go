package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/chat"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ChatGormRepository struct {
	db *gorm.DB
}

func NewChatGormRepository(db *gorm.DB) *ChatGormRepository {
	return &ChatGormRepository{db: db}
}

// --------------------------------------------------
// Sessions / messages
// --------------------------------------------------

func (r *ChatGormRepository) GetSession(ctx context.Context, id uint) (*models.ChatSession, error) {
	var s models.ChatSession
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, lookup(err, "session_not_found")
	}
	return &s, nil
}

func (r *ChatGormRepository) CreateSession(ctx context.Context, s *models.ChatSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create chat session: %w", err)
	}
	return nil
}

func (r *ChatGormRepository) AppendMessage(ctx context.Context, m *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// RecentMessages returns the last limit messages, oldest first.
func (r *ChatGormRepository) RecentMessages(
	ctx context.Context,
	sessionID uint,
	limit int,
) ([]models.ChatMessage, error) {

	var out []models.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("recent chat messages: %w", err)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *ChatGormRepository) MessagesAfter(
	ctx context.Context,
	sessionID uint,
	afterID uint,
) ([]models.ChatMessage, error) {

	var out []models.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND id > ?", sessionID, afterID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("poll chat messages: %w", err)
	}
	return out, nil
}

// --------------------------------------------------
// Salon context
// --------------------------------------------------

func (r *ChatGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (r *ChatGormRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var out []models.Branch
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return out, nil
}

var _ domain.Repository = (*ChatGormRepository)(nil)
