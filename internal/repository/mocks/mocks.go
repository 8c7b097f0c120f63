// Package mocks provides testify mocks for the repository interfaces
// consumed by the domain services.
package mocks

import (
	"context"
	"time"

	"github.com/rferreira/batepapo/internal/domain/message"
	"github.com/rferreira/batepapo/internal/domain/participant"
	"github.com/stretchr/testify/mock"
)

// ParticipantRepository is a mock for participant.Repository.
type ParticipantRepository struct {
	mock.Mock
}

func (m *ParticipantRepository) Create(ctx context.Context, p *participant.Participant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ParticipantRepository) Get(ctx context.Context, name string) (*participant.Participant, error) {
	args := m.Called(ctx, name)
	if p, ok := args.Get(0).(*participant.Participant); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]participant.Participant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ParticipantRepository) Touch(ctx context.Context, name string, seen time.Time) error {
	args := m.Called(ctx, name, seen)
	return args.Error(0)
}

func (m *ParticipantRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *ParticipantRepository) ListStale(ctx context.Context, before time.Time) ([]participant.Participant, error) {
	args := m.Called(ctx, before)
	if list, ok := args.Get(0).([]participant.Participant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MessageRepository is a mock for message.Repository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) Get(ctx context.Context, id string) (*message.Message, error) {
	args := m.Called(ctx, id)
	if msg, ok := args.Get(0).(*message.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) List(ctx context.Context) ([]message.Message, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]message.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) Update(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PresenceChecker is a mock for message.PresenceChecker.
type PresenceChecker struct {
	mock.Mock
}

func (m *PresenceChecker) IsLive(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
