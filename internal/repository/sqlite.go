package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Hades1710/ThirdWave/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			severity TEXT,
			channel TEXT NOT NULL,
			delivered INTEGER NOT NULL,
			reason TEXT,
			score REAL NOT NULL,
			recipients INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_user_id ON alerts(user_id);
		CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Add(ctx context.Context, rec *models.AlertRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, user_id, severity, channel, delivered, reason, score, recipients, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, string(rec.Severity), string(rec.Channel), rec.Delivered,
		string(rec.Reason), rec.Score, rec.Recipients, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting alert record: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.AlertRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, severity, channel, delivered, reason, score, recipients, created_at
		FROM alerts WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning alert record: %w", err)
	}
	return rec, nil
}

func (s *SQLiteDB) List(ctx context.Context, opts Filter) ([]models.AlertRecord, error) {
	var (
		conds []string
		args  []any
	)

	if opts.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, opts.UserID)
	}
	if opts.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *opts.Since)
	}
	if opts.Delivered != nil {
		conds = append(conds, "delivered = ?")
		args = append(args, *opts.Delivered)
	}
	if opts.Channel != nil {
		conds = append(conds, "channel = ?")
		args = append(args, string(*opts.Channel))
	}

	query := `SELECT id, user_id, severity, channel, delivered, reason, score, recipients, created_at FROM alerts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	query += " LIMIT ?"
	args = append(args, limit)

	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing alert records: %w", err)
	}
	defer rows.Close()

	var records []models.AlertRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alert record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.AlertRecord, error) {
	var (
		rec                       models.AlertRecord
		severity, channel, reason string
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &severity, &channel, &rec.Delivered,
		&reason, &rec.Score, &rec.Recipients, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Severity = models.Severity(severity)
	rec.Channel = models.Channel(channel)
	rec.Reason = models.Reason(reason)
	return &rec, nil
}
