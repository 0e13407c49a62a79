package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pathguard/internal/db"
)

// recentCodeKeep bounds how many submitted codes are remembered for
// suggestions.
const recentCodeKeep = 10

// SQLiteRecentCodeRepo implements RecentCodeRepo over SQLite.
type SQLiteRecentCodeRepo struct {
	db db.DBTX
}

// NewSQLiteRecentCodeRepo creates a new SQLiteRecentCodeRepo.
func NewSQLiteRecentCodeRepo(dbtx db.DBTX) *SQLiteRecentCodeRepo {
	return &SQLiteRecentCodeRepo{db: dbtx}
}

func (r *SQLiteRecentCodeRepo) Record(ctx context.Context, code string, usedAt time.Time) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}

	query := `INSERT INTO recent_work_codes (code, last_used_at, use_count)
		VALUES (?, ?, 1)
		ON CONFLICT(code) DO UPDATE SET
			last_used_at = excluded.last_used_at,
			use_count = recent_work_codes.use_count + 1`
	if _, err := r.db.ExecContext(ctx, query, code, usedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording work code: %w", err)
	}

	trim := `DELETE FROM recent_work_codes WHERE code NOT IN (
		SELECT code FROM recent_work_codes ORDER BY last_used_at DESC LIMIT ?
	)`
	if _, err := r.db.ExecContext(ctx, trim, recentCodeKeep); err != nil {
		return fmt.Errorf("trimming work codes: %w", err)
	}
	return nil
}

func (r *SQLiteRecentCodeRepo) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return nil, nil
	}

	// ESCAPE so a literal % or _ in the typed prefix cannot widen the match.
	pattern := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix) + "%"
	query := `SELECT code FROM recent_work_codes
		WHERE code LIKE ? ESCAPE '\'
		ORDER BY use_count DESC, last_used_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("suggesting work codes: %w", err)
	}
	defer rows.Close()
	return scanCodes(rows)
}

func (r *SQLiteRecentCodeRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code FROM recent_work_codes ORDER BY last_used_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing work codes: %w", err)
	}
	defer rows.Close()
	return scanCodes(rows)
}

func scanCodes(rows *sql.Rows) ([]string, error) {
	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning work code: %w", err)
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work codes: %w", err)
	}
	return codes, nil
}
