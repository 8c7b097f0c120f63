package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rferreira/batepapo/internal/repository"
)

// Service handles message posting, retrieval and author-guarded mutation.
type Service struct {
	messages Repository
	presence PresenceChecker
	logger   *slog.Logger
}

// NewService creates a message service.
func NewService(messages Repository, presence PresenceChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{messages: messages, presence: presence, logger: logger}
}

// Post stores a new message authored by from. The author must be a live
// participant at check time; the check and the insert are deliberately
// not atomic with respect to a concurrent eviction sweep.
func (s *Service) Post(ctx context.Context, from string, req PostRequest) (*Message, error) {
	if err := ValidatePost(req); err != nil {
		return nil, err
	}
	if err := s.requireLive(ctx, from); err != nil {
		return nil, err
	}

	m := &Message{
		ID:        uuid.NewString(),
		From:      from,
		To:        req.To,
		Text:      req.Text,
		Kind:      req.Kind,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return m, nil
}

// List returns the messages visible to viewer, oldest first, truncated to
// the last limit entries when limit is positive.
func (s *Service) List(ctx context.Context, viewer string, limit int) ([]Message, error) {
	all, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return FilterForViewer(all, viewer, limit), nil
}

// Update replaces the recipient, text and kind of a message. Only the
// original author may edit; authorship and creation time are immutable.
func (s *Service) Update(ctx context.Context, actor, id string, req PostRequest) (*Message, error) {
	if err := ValidatePost(req); err != nil {
		return nil, err
	}
	if err := s.requireLive(ctx, actor); err != nil {
		return nil, err
	}

	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.From != actor {
		return nil, ErrNotAuthor
	}

	m.To = req.To
	m.Text = req.Text
	m.Kind = req.Kind
	if err := s.messages.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("updating message: %w", err)
	}
	return m, nil
}

// Delete removes a message. Only the original author may delete.
func (s *Service) Delete(ctx context.Context, actor, id string) error {
	m, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if m.From != actor {
		return ErrNotAuthor
	}

	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("deleting message: %w", err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Message, error) {
	m, err := s.messages.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("loading message: %w", err)
	}
	return m, nil
}

func (s *Service) requireLive(ctx context.Context, name string) error {
	if name == "" {
		return ErrUnknownUser
	}
	live, err := s.presence.IsLive(ctx, name)
	if err != nil {
		return fmt.Errorf("checking presence: %w", err)
	}
	if !live {
		return ErrUnknownUser
	}
	return nil
}
