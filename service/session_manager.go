package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionSuffixLength = 9

// SessionManager holds the autocomplete session token of one client. The
// token groups keystrokes and the final details request into one billable
// session and lives until a result is selected or the search is cleared.
type SessionManager struct {
	mu    sync.Mutex
	token string
	now   func() time.Time
}

// NewSessionManager constructs a SessionManager with no active session.
func NewSessionManager() *SessionManager {
	return &SessionManager{now: time.Now}
}

// StartOrReuse returns the active token, creating one if none is active.
func (sm *SessionManager) StartOrReuse() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.token == "" {
		sm.token = newSessionToken(sm.now())
	}
	return sm.token
}

// End clears the active token.
func (sm *SessionManager) End() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.token = ""
}

// Active returns the current token, if any.
func (sm *SessionManager) Active() (string, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.token, sm.token != ""
}

// newSessionToken formats session_<unix millis>_<random suffix>.
func newSessionToken(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionSuffixLength]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
