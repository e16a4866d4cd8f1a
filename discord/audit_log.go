package discord

import "encoding/json"

// AuditLog is a page of a guild's audit log with the objects its
// entries reference.
type AuditLog struct {
	Entries  []AuditLogEntry `json:"audit_log_entries"`
	Users    []User          `json:"users,omitempty"`
	Webhooks []Webhook       `json:"webhooks,omitempty"`
	Threads  []Channel       `json:"threads,omitempty"`
}

// AuditLogEntry records one moderation action.
type AuditLogEntry struct {
	ID         Snowflake        `json:"id"`
	TargetID   Snowflake        `json:"target_id,omitempty"`
	UserID     UserID           `json:"user_id,omitempty"`
	ActionType int              `json:"action_type"`
	Reason     string           `json:"reason,omitempty"`
	Changes    []AuditLogChange `json:"changes,omitempty"`
}

// AuditLogChange is one before/after pair on an audited object. Values
// stay raw; their shape depends on the changed key.
type AuditLogChange struct {
	Key      string          `json:"key"`
	OldValue json.RawMessage `json:"old_value,omitempty"`
	NewValue json.RawMessage `json:"new_value,omitempty"`
}
