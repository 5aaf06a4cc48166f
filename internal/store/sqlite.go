// 包 store 提供投递历史存储（SQLite），记录每次 webhook 通知的结果。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"go-blog-tools/internal/model"
)

// SQLite 封装 *sql.DB，基于 modernc.org/sqlite（纯 Go 实现）。
type SQLite struct {
	db *sql.DB
}

// OpenSQLite 打开数据库并执行建表；DSN 可为文件路径或 'file:...' 形式。
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS deliveries (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            file_path TEXT NOT NULL,
            title TEXT,
            webhook_host TEXT,
            status_code INTEGER,
            error TEXT,
            sent_at TIMESTAMP
        );`)
	if err != nil {
		return fmt.Errorf("exec migrate: %w", err)
	}
	return nil
}

// RecordDelivery 追加一条投递记录。
func (s *SQLite) RecordDelivery(ctx context.Context, d model.Delivery) error {
	if d.FilePath == "" {
		return errors.New("delivery.file_path required")
	}
	if d.SentAt.IsZero() {
		d.SentAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO deliveries(file_path, title, webhook_host, status_code, error, sent_at)
        VALUES(?,?,?,?,?,?)`,
		d.FilePath, d.Title, d.WebhookHost, d.StatusCode, d.Error, d.SentAt.UTC())
	if err != nil {
		return fmt.Errorf("insert delivery %s: %w", d.FilePath, err)
	}
	return nil
}

// ListDeliveries 返回全部投递记录，按发送时间倒序。
func (s *SQLite) ListDeliveries(ctx context.Context) ([]model.Delivery, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT file_path, COALESCE(title,''), COALESCE(webhook_host,''), COALESCE(status_code,0), COALESCE(error,''), sent_at
        FROM deliveries ORDER BY sent_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()
	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var sentAt sql.NullTime
		if err := rows.Scan(&d.FilePath, &d.Title, &d.WebhookHost, &d.StatusCode, &d.Error, &sentAt); err != nil {
			return nil, fmt.Errorf("scan deliveries: %w", err)
		}
		if sentAt.Valid {
			d.SentAt = sentAt.Time
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return out, nil
}
