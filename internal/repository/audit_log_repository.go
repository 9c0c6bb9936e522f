package repository

import (
	"context"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// AuditLogRepository is the append-only audit sink. Nothing updates or
// deletes rows here.
type AuditLogRepository struct {
	DB *db.Postgres
}

func (r AuditLogRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	performedAt := entry.PerformedAt
	if performedAt.IsZero() {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO audit_logs (action, description, severity, type, user_id, affected_id, affected_model, performed_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		`, entry.Action, entry.Description, entry.Severity, entry.Type, entry.UserID, entry.AffectedID, entry.AffectedModel)
		return err
	}
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO audit_logs (action, description, severity, type, user_id, affected_id, affected_model, performed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, entry.Action, entry.Description, entry.Severity, entry.Type, entry.UserID, entry.AffectedID, entry.AffectedModel, performedAt)
	return err
}

func (r AuditLogRepository) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, action, description, severity, type, user_id, affected_id, affected_model, performed_at
		FROM audit_logs
		ORDER BY performed_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e        domain.AuditEntry
			severity string
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.Description, &severity, &e.Type, &e.UserID, &e.AffectedID, &e.AffectedModel, &e.PerformedAt); err != nil {
			return nil, err
		}
		e.Severity = domain.LogSeverity(severity)
		out = append(out, e)
	}
	return out, rows.Err()
}
