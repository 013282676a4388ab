package mocks

import (
	"context"

	"github.com/editorial-backoffice/internal/models"
)

// MockSessionStore is a mock implementation of session.Store
type MockSessionStore struct {
	ActorValue models.Actor
	Active     bool
	Stamped    bool
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// WithActor returns a store holding an active session for the given actor.
func (m *MockSessionStore) WithActor(actor models.Actor) *MockSessionStore {
	m.ActorValue = actor
	m.Active = true
	return m
}

func (m *MockSessionStore) Actor(ctx context.Context) (models.Actor, bool) {
	if !m.Active {
		return models.Actor{}, false
	}
	return m.ActorValue, true
}

func (m *MockSessionStore) MarkConnected(ctx context.Context) bool {
	if m.Stamped {
		return false
	}
	m.Stamped = true
	return true
}
