package cart

import "sync"

// Store keeps one working cart per terminal session. Carts live only in
// memory; a restart starts every terminal from an empty cart, which
// matches how the registers are operated.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the session's cart, creating an empty one on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// Drop discards the session's cart. The next Get starts fresh.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Len reports how many sessions currently hold a cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
