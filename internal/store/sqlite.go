package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"truthrecruit-engine/internal/domain"
)

// SQLite stores reports as JSON payloads. Timestamps are unix milliseconds;
// expires_at = 0 never expires.
type SQLite struct {
	db  *DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLite(db *DB, ttl time.Duration, now func() time.Time) *SQLite {
	if now == nil {
		now = time.Now
	}
	return &SQLite{db: db, ttl: ttl, now: now}
}

func (s *SQLite) Save(ctx context.Context, a domain.CompanyAnalysis) error {
	if a.CompanyID == "" {
		return errors.New("save report: empty company id")
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	now := s.now()
	var expires int64
	if s.ttl > 0 {
		expires = now.Add(s.ttl).UnixMilli()
	}

	_, err = s.db.Pool.ExecContext(ctx, `
INSERT INTO reports(id, company_name, payload, created_at, expires_at)
VALUES(?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  company_name = excluded.company_name,
  payload = excluded.payload,
  created_at = excluded.created_at,
  expires_at = excluded.expires_at;`,
		a.CompanyID, a.Company.Name, string(payload), now.UnixMilli(), expires)
	if err != nil {
		return fmt.Errorf("save report %s: %w", a.CompanyID, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (domain.CompanyAnalysis, error) {
	var payload string
	err := s.db.Pool.QueryRowContext(ctx, `
SELECT payload FROM reports
WHERE id = ? AND (expires_at = 0 OR expires_at > ?)
LIMIT 1;`, id, s.now().UnixMilli()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CompanyAnalysis{}, ErrNotFound
	}
	if err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("get report %s: %w", id, err)
	}

	var a domain.CompanyAnalysis
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return a, nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.Pool.ExecContext(ctx, `DELETE FROM reports WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.Pool.ExecContext(ctx, `
DELETE FROM reports
WHERE expires_at != 0 AND expires_at <= ?;
`, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge expired reports: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *SQLite) Close() error { return s.db.Close() }
