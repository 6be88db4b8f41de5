package memory

import (
	"fmt"
	"time"

	"virtual-lab-be/internal/lab"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// LiveSession pairs a session with its running controller. Sessions are
// keyed per user per lab; an expired entry simply means the student
// starts the lab over.
type LiveSession struct {
	Session    *lab.Session
	Controller *lab.Controller
}

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanup time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func key(userID uuid.UUID, labID string) string {
	return fmt.Sprintf("%s:%s", userID, labID)
}

func (r *SessionRepository) Save(userID uuid.UUID, labID string, live *LiveSession) {
	r.cache.Set(key(userID, labID), live, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID uuid.UUID, labID string) (*LiveSession, bool) {
	if x, found := r.cache.Get(key(userID, labID)); found {
		return x.(*LiveSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID uuid.UUID, labID string) {
	r.cache.Delete(key(userID, labID))
}

// Touch renews the TTL on activity so a student mid-experiment does not
// lose the session under them.
func (r *SessionRepository) Touch(userID uuid.UUID, labID string) {
	if x, found := r.cache.Get(key(userID, labID)); found {
		r.cache.Set(key(userID, labID), x, cache.DefaultExpiration)
	}
}
