package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recouvrement-service/internal/domain"
)

// AuditRepository persists audit traces (table tracabilite).
type AuditRepository interface {
	Create(ctx context.Context, trace *domain.AuditTrace) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, trace *domain.AuditTrace) error {
	const query = `
        INSERT INTO tracabilite (table_cible, id_enregistrement, action, id_utilisateur, date_action, ip_address, user_agent, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id_trace`

	return r.pool.QueryRow(ctx, query,
		trace.TableCible,
		trace.RecordID,
		trace.Action,
		trace.UserID,
		trace.Date,
		nullable(trace.IPAddress),
		nullable(trace.UserAgent),
		nullable(trace.Description),
	).Scan(&trace.ID)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
