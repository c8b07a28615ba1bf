package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
)

// MemoryStore is the ephemeral backend: process-local slices and maps behind
// one mutex. It mirrors the durable backend's externally observed behavior,
// including vote toggling atomicity (the mutex serializes the whole vote
// read-modify-write).
type MemoryStore struct {
	mu       sync.Mutex
	messages []domain.Message
	recipes  []domain.Recipe
	votes    map[string]string // "<messageID>\x00<username>" → vote type
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{votes: make(map[string]string)}
}

func voteKey(messageID, username string) string {
	return messageID + "\x00" + username
}

// AddMessage appends a chat message.
func (s *MemoryStore) AddMessage(_ context.Context, m *domain.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.NewString()
	m.Votes = 0
	m.CreatedAt = time.Now().UTC()
	if m.Kind == "" {
		m.Kind = domain.KindUser
	}
	s.messages = append(s.messages, *m)
	return m.ID, nil
}

// AddRecipe appends a recipe.
func (s *MemoryStore) AddRecipe(_ context.Context, r *domain.Recipe) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	r.Votes = 0
	r.CreatedAt = time.Now().UTC()
	s.recipes = append(s.recipes, *r)
	return r.ID, nil
}

// RecentMessages returns the newest limit messages, oldest first. Messages
// are appended in insertion order, so the tail of the slice is the newest.
func (s *MemoryStore) RecentMessages(_ context.Context, limit int) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if limit > 0 && len(s.messages) > limit {
		start = len(s.messages) - limit
	}
	out := make([]domain.Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out, nil
}

// Vote applies a toggling vote and returns the updated counter.
func (s *MemoryStore) Vote(_ context.Context, messageID, username, voteType string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msg *domain.Message
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			msg = &s.messages[i]
			break
		}
	}
	if msg == nil {
		return 0, ErrNotFound
	}

	dir := 1
	if voteType == domain.VoteDown {
		dir = -1
	}

	key := voteKey(messageID, username)
	switch existing, ok := s.votes[key]; {
	case ok && existing == voteType:
		delete(s.votes, key)
		msg.Votes -= dir
	case ok:
		s.votes[key] = voteType
		msg.Votes += 2 * dir
	default:
		s.votes[key] = voteType
		msg.Votes += dir
	}
	return msg.Votes, nil
}

// ClearAll wipes everything.
func (s *MemoryStore) ClearAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.recipes = nil
	s.votes = make(map[string]string)
	return nil
}

// HasMessagesFrom reports whether username has posted before.
func (s *MemoryStore) HasMessagesFrom(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].Username == username {
			return true, nil
		}
	}
	return false, nil
}
