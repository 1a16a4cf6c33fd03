package remote

import (
	"strings"
	"sync"
)

// TokenSlot is durable storage for the bearer token.
type TokenSlot interface {
	Get() string
	Set(string)
}

type memorySlot struct {
	token string
}

func (s *memorySlot) Get() string  { return s.token }
func (s *memorySlot) Set(v string) { s.token = v }

// Session owns the bearer token of one client. It starts from whatever the slot
// holds, is populated by login or register and cleared by logout or account deletion.
type Session struct {
	mu   sync.Mutex
	slot TokenSlot
}

func NewSession(slot TokenSlot) *Session {
	if slot == nil {
		slot = &memorySlot{}
	}
	return &Session{slot: slot}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.slot.Get())
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot.Set(strings.TrimSpace(token))
}

func (s *Session) Clear() {
	s.SetToken("")
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
