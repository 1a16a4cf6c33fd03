package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

// DeviceRow is one stored device document.
type DeviceRow struct {
	ID        string
	DocJSON   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListDeviceDocs returns documents in insertion order.
func (r *Repository) ListDeviceDocs(ctx context.Context) ([]DeviceRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, doc_json, created_at, updated_at
		FROM devices
		ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []DeviceRow{}
	for rows.Next() {
		row, err := scanDeviceRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *Repository) GetDeviceDoc(ctx context.Context, id string) (DeviceRow, error) {
	row, err := scanDeviceRow(r.db.QueryRowContext(ctx, `
		SELECT id, doc_json, created_at, updated_at
		FROM devices WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return DeviceRow{}, fmt.Errorf("%w: device %s", ErrNotFound, id)
	}
	return row, err
}

func (r *Repository) InsertDeviceDoc(ctx context.Context, row DeviceRow) error {
	if !json.Valid(row.DocJSON) {
		return fmt.Errorf("device %s: invalid document", row.ID)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO devices (id, doc_json, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		row.ID, string(row.DocJSON), formatTime(row.CreatedAt), formatTime(row.UpdatedAt))
	return err
}

// ReplaceDeviceDoc overwrites the document body and updated_at of an existing row.
func (r *Repository) ReplaceDeviceDoc(ctx context.Context, row DeviceRow) error {
	if !json.Valid(row.DocJSON) {
		return fmt.Errorf("device %s: invalid document", row.ID)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE devices SET doc_json = ?, updated_at = ? WHERE id = ?`,
		string(row.DocJSON), formatTime(row.UpdatedAt), row.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteDeviceDoc(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountDeviceDocs(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devices`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeviceRow(s rowScanner) (DeviceRow, error) {
	var (
		row                  DeviceRow
		doc                  string
		createdAt, updatedAt string
	)
	if err := s.Scan(&row.ID, &doc, &createdAt, &updatedAt); err != nil {
		return DeviceRow{}, err
	}
	row.DocJSON = []byte(doc)
	row.CreatedAt = parseTime(createdAt)
	row.UpdatedAt = parseTime(updatedAt)
	return row, nil
}
