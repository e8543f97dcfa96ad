// Package session provides the conversation history log: a bounded
// append-only sequence of turns per session key, with an explicit reset.
// History is record-keeping only; it is never read back into intent or slot
// resolution, so every turn is self-contained.
package session

import (
	"context"
	"time"
)

// maxTurns bounds the per-session log; appending past the bound drops the
// oldest turn.
const maxTurns = 200

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one conversation entry. Immutable once appended.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Service defines the conversation log interface.
type Service interface {
	// Append adds a turn to the session's log, creating the session on
	// first use.
	Append(ctx context.Context, sessionID string, turn Turn) error

	// List returns the session's turns in append order. An unknown session
	// yields an empty slice, not an error.
	List(ctx context.Context, sessionID string) ([]Turn, error)

	// Reset clears the session's log. Resetting an unknown session is a
	// no-op.
	Reset(ctx context.Context, sessionID string) error

	// CleanupExpired removes turns older than retentionDays and returns how
	// many were deleted.
	CleanupExpired(ctx context.Context, retentionDays int) (int64, error)
}
