package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vidamais/portal-api/internal/model"
)

// Entry is one audit trail record.
type Entry struct {
	ID         uuid.UUID       `json:"id"`
	CallerID   uuid.UUID       `json:"caller_id"`
	CallerRole model.Role      `json:"caller_role"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type LogOptions struct {
	Changes interface{}
}

// Service keeps an in-process audit trail and mirrors every entry to the
// structured log.
type Service struct {
	mu      sync.Mutex
	entries []Entry
	logger  zerolog.Logger
}

func NewService(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// Log records an audit entry. Marshalling failures are logged and the entry
// is kept without its change payload; auditing never fails the operation.
func (s *Service) Log(ctx context.Context, caller model.Caller, action, entityType string, entityID uuid.UUID, opts *LogOptions) {
	entry := Entry{
		ID:         uuid.New(),
		CallerID:   caller.PatientID,
		CallerRole: caller.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}

	if opts != nil && opts.Changes != nil {
		changes, err := json.Marshal(opts.Changes)
		if err != nil {
			s.logger.Error().Err(err).Str("action", action).Msg("failed to marshal audit changes")
		} else {
			entry.Changes = changes
		}
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.logger.Info().
		Str("caller_id", entry.CallerID.String()).
		Str("caller_role", string(entry.CallerRole)).
		Str("action", action).
		Str("entity_type", entityType).
		Str("entity_id", entityID.String()).
		Msg("audit")
}

// RecentFor returns the caller's own latest entries, newest first, capped
// at limit. Backs the client-facing recent-activity view.
func (s *Service) RecentFor(callerID uuid.UUID, limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if s.entries[i].CallerID == callerID {
			out = append(out, s.entries[i])
		}
	}
	return out
}

// Entries returns a snapshot of the audit trail, oldest first.
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
