package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pathguard/internal/db"
	"github.com/alexanderramin/pathguard/internal/domain"
)

// SQLitePendingLookupRepo implements PendingLookupRepo over SQLite.
type SQLitePendingLookupRepo struct {
	db db.DBTX
}

// NewSQLitePendingLookupRepo creates a new SQLitePendingLookupRepo.
func NewSQLitePendingLookupRepo(dbtx db.DBTX) *SQLitePendingLookupRepo {
	return &SQLitePendingLookupRepo{db: dbtx}
}

func (r *SQLitePendingLookupRepo) Save(ctx context.Context, l *domain.LookupRequest) error {
	query := `INSERT INTO pending_lookups (id, badge_id, work_code, seq, issued_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			badge_id = excluded.badge_id,
			work_code = excluded.work_code,
			seq = excluded.seq,
			issued_at = excluded.issued_at`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.BadgeID,
		l.WorkCode,
		l.SequenceNumber,
		l.IssuedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving pending lookup: %w", err)
	}
	return nil
}

func (r *SQLitePendingLookupRepo) Latest(ctx context.Context) (*domain.LookupRequest, error) {
	query := `SELECT id, badge_id, work_code, seq, issued_at
		FROM pending_lookups ORDER BY seq DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	var l domain.LookupRequest
	var issuedAtStr string
	err := row.Scan(&l.ID, &l.BadgeID, &l.WorkCode, &l.SequenceNumber, &issuedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pending lookup: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning pending lookup: %w", err)
	}
	l.IssuedAt, err = time.Parse(time.RFC3339, issuedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing issued_at: %w", err)
	}
	return &l, nil
}

func (r *SQLitePendingLookupRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_lookups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pending lookup: %w", err)
	}
	return nil
}

func (r *SQLitePendingLookupRepo) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_lookups WHERE issued_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("pruning pending lookups: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned lookups: %w", err)
	}
	return int(n), nil
}
