package wizard

import (
	"sync"

	"github.com/google/uuid"

	"navix-backend/internal/models"
)

// Session is one user's in-progress wizard. The draft is owned exclusively
// by the session and discarded when the session ends; only finish persists
// anything derived from it.
type Session struct {
	ID     string
	UserID uuid.UUID
	Draft  *Draft

	mu        sync.Mutex
	finishing bool
}

// Snapshot returns a copy of the draft safe to render from handlers.
func (s *Session) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *s.Draft
	d.Files = append([]models.StagedDocument(nil), s.Draft.Files...)
	return d
}

func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Draft.Step()
}

func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Draft.Next()
}

func (s *Session) Back() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Draft.Back()
}

// SetDetails updates the step-1 fields. Empty strings leave a field as-is so
// partial updates do not wipe earlier input.
func (s *Session) SetDetails(product, origin, destination, ncmCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product != "" {
		s.Draft.Product = product
	}
	if origin != "" {
		s.Draft.Origin = origin
	}
	if destination != "" {
		s.Draft.Destination = destination
	}
	if ncmCode != "" {
		s.Draft.NCMCode = ncmCode
	}
}

// Generator produces advisory text for a product. Implementations must
// degrade to a fallback string instead of failing.
type Generator interface {
	GenerateAdvisory(product string) string
}

// RequestAdvisory fetches classification guidance for the draft's product and
// caches it. An empty product performs no call and returns whatever was
// cached before.
func (s *Session) RequestAdvisory(gen Generator) string {
	s.mu.Lock()
	product := s.Draft.Product
	cached := s.Draft.Advisory
	s.mu.Unlock()

	if product == "" {
		return cached
	}

	text := gen.GenerateAdvisory(product)

	s.mu.Lock()
	s.Draft.Advisory = text
	s.mu.Unlock()
	return text
}

// SessionStore holds active wizard sessions in memory, one per session id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

func (st *SessionStore) Create(userID uuid.UUID, operationType string) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		UserID: userID,
		Draft:  NewDraft(operationType),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session only when it belongs to the given user, so one
// user can never touch another's draft.
func (st *SessionStore) Get(id string, userID uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || s.UserID != userID {
		return nil, false
	}
	return s, true
}

// Delete drops the session. Objects already uploaded for an abandoned draft
// stay in the bucket; reconciliation is out of scope here.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
