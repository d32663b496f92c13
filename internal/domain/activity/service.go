package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordInput describes one log entry to append.
type RecordInput struct {
	Type        ActivityType
	Description string
	UserID      *uuid.UUID
	TaskID      *uuid.UUID
	ProjectID   *uuid.UUID
}

type Service interface {
	// Record appends a log entry. Logging is best-effort: failures are
	// logged and swallowed so they never fail the mutation that triggered
	// them.
	Record(ctx context.Context, input RecordInput)
	Recent(ctx context.Context, limit int) ([]Activity, error)
	List(ctx context.Context, filter ActivityFilter) ([]Activity, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Record(ctx context.Context, input RecordInput) {
	if !input.Type.IsValid() {
		s.logger.Warn("dropping activity with unknown type",
			zap.String("type", string(input.Type)))
		return
	}

	entry := &Activity{
		ID:          uuid.New(),
		Type:        input.Type,
		Description: input.Description,
		UserID:      input.UserID,
		TaskID:      input.TaskID,
		ProjectID:   input.ProjectID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("type", string(input.Type)),
			zap.Error(err))
	}
}

func (s *service) Recent(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.FindRecent(ctx, limit)
}

func (s *service) List(ctx context.Context, filter ActivityFilter) ([]Activity, error) {
	return s.repo.FindAll(ctx, filter)
}
