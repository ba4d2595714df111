package dto

import (
	"encoding/json"
	"time"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
)

// AuditEntryResponse is the API representation of an audit log entry.
// Compressed payloads are already inflated by the audit service.
type AuditEntryResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	UserID     string          `json:"userId,omitempty"`
	UserEmail  string          `json:"userEmail,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FromAuditEntry converts an audit entry to its API representation.
func FromAuditEntry(e postgres.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Action:     string(e.Action),
		UserID:     e.UserID,
		UserEmail:  e.UserEmail,
		Changes:    e.Changes,
		CreatedAt:  e.CreatedAt,
	}
}
