package model

import "time"

// ActorSystem is the actor recorded for entries emitted by the engine itself
const ActorSystem = "system"

// AuditEntry is an append-only record of an action taken by a tenant or by
// the engine
type AuditEntry struct {
	Key        string    `json:"_key,omitempty"`
	Actor      string    `json:"actor"` // tenant id or "system"
	Action     string    `json:"action"`
	TargetType string    `json:"target_type,omitempty"` // e.g., "CVE", "Advisory"
	TargetID   string    `json:"target_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	ObjType    string    `json:"objtype,omitempty"`
}

// NewAuditEntry creates an audit entry stamped with the current time
func NewAuditEntry(actor, action string) AuditEntry {
	return AuditEntry{
		Actor:     actor,
		Action:    action,
		ObjType:   "AuditEntry",
		Timestamp: time.Now().UTC(),
	}
}
