// Package logstore writes audit events as structured log lines.
package logstore

import (
	"context"
	"log/slog"

	audit "quorum/pkg/platform/audit"
)

type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit",
		"category", event.Category,
		"action", event.Action,
		"user_id", event.UserID,
		"organization_id", event.OrganizationID,
		"subject", event.Subject,
		"decision", event.Decision,
		"reason", event.Reason,
		"actor_id", event.ActorID,
		"request_id", event.RequestID,
	)
	return nil
}
