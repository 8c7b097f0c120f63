package participant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rferreira/batepapo/internal/domain/message"
	"github.com/rferreira/batepapo/internal/repository"
)

// Service tracks presence: who is in the room, when they were last heard
// from, and when they should be considered gone.
type Service struct {
	participants Repository
	messages     MessageLog
	staleAfter   time.Duration
	logger       *slog.Logger
}

// NewService creates a presence service. staleAfter is the heartbeat age
// beyond which a participant is evicted by Sweep.
func NewService(participants Repository, messages MessageLog, staleAfter time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		participants: participants,
		messages:     messages,
		staleAfter:   staleAfter,
		logger:       logger,
	}
}

// Register adds a participant to the room and announces the join. The
// announcement is best-effort: if appending the status message fails the
// participant record is not rolled back.
func (s *Service) Register(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	now := time.Now()
	p := &Participant{Name: name, LastSeen: now}
	if err := s.participants.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrNameTaken
		}
		return fmt.Errorf("creating participant: %w", err)
	}

	if err := s.messages.Create(ctx, statusMessage(name, "joined", now)); err != nil {
		s.logger.Warn("join announcement failed", "participant", name, "error", err)
		return fmt.Errorf("announcing join: %w", err)
	}

	return nil
}

// Heartbeat refreshes last_seen for a live participant. A heartbeat never
// creates a participant: an unknown name fails with ErrUnknownParticipant.
func (s *Service) Heartbeat(ctx context.Context, name string) error {
	if _, err := s.participants.Get(ctx, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownParticipant
		}
		return fmt.Errorf("loading participant: %w", err)
	}

	// Touch is an upsert keyed by name. The existence check above and the
	// refresh are not atomic with respect to a concurrent sweep; the upsert
	// keeps the one-record-per-name invariant either way.
	if err := s.participants.Touch(ctx, name, time.Now()); err != nil {
		return fmt.Errorf("refreshing heartbeat: %w", err)
	}
	return nil
}

// List returns all live participants.
func (s *Service) List(ctx context.Context) ([]Participant, error) {
	list, err := s.participants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	return list, nil
}

// IsLive reports whether a live participant owns the name.
func (s *Service) IsLive(ctx context.Context, name string) (bool, error) {
	_, err := s.participants.Get(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading participant: %w", err)
	}
	return true, nil
}

// Sweep evicts every participant whose heartbeat age exceeds the staleness
// threshold, announcing each departure. Participants are evaluated
// independently: one failed eviction is logged and does not block the rest.
// Returns the names that were evicted.
func (s *Service) Sweep(ctx context.Context) ([]string, error) {
	now := time.Now()
	stale, err := s.participants.ListStale(ctx, now.Add(-s.staleAfter))
	if err != nil {
		return nil, fmt.Errorf("listing stale participants: %w", err)
	}

	var evicted []string
	for _, p := range stale {
		if err := s.participants.Delete(ctx, p.Name); err != nil {
			// Another sweep or a racing delete may have won; either way
			// this participant is someone else's problem now.
			s.logger.Warn("evicting participant failed", "participant", p.Name, "error", err)
			continue
		}
		evicted = append(evicted, p.Name)

		if err := s.messages.Create(ctx, statusMessage(p.Name, "left", now)); err != nil {
			s.logger.Warn("leave announcement failed", "participant", p.Name, "error", err)
		}
	}

	return evicted, nil
}

func statusMessage(name, text string, at time.Time) *message.Message {
	return &message.Message{
		ID:        uuid.NewString(),
		From:      name,
		To:        message.Broadcast,
		Text:      text,
		Kind:      message.KindStatus,
		CreatedAt: at,
	}
}
