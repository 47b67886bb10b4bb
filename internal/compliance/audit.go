package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AuditEventType represents the type of compliance event.
type AuditEventType string

const (
	// EventOptOutReceived is logged when a contact revokes texting
	// consent.
	EventOptOutReceived AuditEventType = "compliance.optout_received"
	// EventDeactivationObserved is logged when the pipeline sees a
	// contact carrying deactivation tags.
	EventDeactivationObserved AuditEventType = "compliance.deactivation_observed"
)

// AuditEvent represents an immutable compliance audit record.
type AuditEvent struct {
	ID         string          `json:"id"`
	EventType  AuditEventType  `json:"event_type"`
	LocationID string          `json:"location_id"`
	ContactID  string          `json:"contact_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditDetails contains event-specific details.
type AuditDetails struct {
	MatchedKeyword string   `json:"matched_keyword,omitempty"`
	MatchedTags    []string `json:"matched_tags,omitempty"`
}

// AuditService handles compliance audit logging. Nil-safe: a nil
// service drops events, so callers without a database skip auditing
// without guarding every call site.
type AuditService struct {
	pool execer
}

// NewAuditService creates a new audit service. A nil pool is allowed
// and yields a no-op service.
func NewAuditService(pool *pgxpool.Pool) *AuditService {
	if pool == nil {
		return &AuditService{}
	}
	return &AuditService{pool: pool}
}

func newAuditServiceWithDB(db execer) *AuditService {
	return &AuditService{pool: db}
}

// LogEvent records a compliance audit event.
func (s *AuditService) LogEvent(ctx context.Context, event AuditEvent) error {
	if s == nil || s.pool == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO compliance_audit_events (
			id, event_type, location_id, contact_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.LocationID,
		event.ContactID,
		event.Details,
		event.CreatedAt,
	); err != nil {
		return fmt.Errorf("compliance: failed to log audit event: %w", err)
	}
	return nil
}

// LogOptOut logs a consent revocation.
func (s *AuditService) LogOptOut(ctx context.Context, locationID, contactID, matched string) error {
	detailsJSON, _ := json.Marshal(AuditDetails{MatchedKeyword: matched})
	return s.LogEvent(ctx, AuditEvent{
		EventType:  EventOptOutReceived,
		LocationID: locationID,
		ContactID:  contactID,
		Details:    detailsJSON,
	})
}

// LogDeactivationObserved logs that a contact carried deactivation tags
// at pipeline time.
func (s *AuditService) LogDeactivationObserved(ctx context.Context, locationID, contactID string, tags []string) error {
	detailsJSON, _ := json.Marshal(AuditDetails{MatchedTags: tags})
	return s.LogEvent(ctx, AuditEvent{
		EventType:  EventDeactivationObserved,
		LocationID: locationID,
		ContactID:  contactID,
		Details:    detailsJSON,
	})
}
