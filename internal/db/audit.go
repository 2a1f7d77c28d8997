package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// InsertAuditEvent appends one entry to an organization's audit log.
func (db *DB) InsertAuditEvent(ctx context.Context, e AuditEvent) error {
	var detailJSON []byte
	if e.Detail != nil {
		var err error
		detailJSON, err = json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("failed to marshal audit detail: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO audit_events (org_id, actor_id, action, entity_type, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.OrgID, e.ActorID, e.Action, e.EntityType, e.EntityID, detailJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// ListAuditEvents lists an organization's audit log, newest first.
func (db *DB) ListAuditEvents(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]AuditEvent, int, error) {
	var total int
	if err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_events WHERE org_id = $1`, orgID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, org_id, actor_id, action, entity_type, entity_id, detail, created_at
		 FROM audit_events
		 WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		orgID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	events := make([]AuditEvent, 0)
	for rows.Next() {
		var e AuditEvent
		var detailJSON []byte
		if err := rows.Scan(&e.ID, &e.OrgID, &e.ActorID, &e.Action, &e.EntityType,
			&e.EntityID, &detailJSON, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if detailJSON != nil {
			_ = json.Unmarshal(detailJSON, &e.Detail)
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}
