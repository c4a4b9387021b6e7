package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spaghetto/manager/internal/common"
)

// SaveInfo describes a stored save slot.
type SaveInfo struct {
	UpdatedAt time.Time
	Slot      string
	Size      int
}

// PutSave stores a serialized save document under a slot name,
// replacing any previous document in the slot.
func (s *SQLiteStorage) PutSave(ctx context.Context, slot string, document []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(slot, "slot"); err != nil {
		return err
	}
	if len(document) == 0 {
		return ErrEmptyDoc
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP`,
		slot, document)
	if err != nil {
		return fmt.Errorf("failed to store save %q: %w", slot, err)
	}
	return nil
}

// GetSave retrieves the document stored under a slot name.
func (s *SQLiteStorage) GetSave(ctx context.Context, slot string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(slot, "slot"); err != nil {
		return nil, err
	}

	var document []byte
	row := s.db.QueryRowContext(ctx, `SELECT document FROM saves WHERE slot = ?`, slot)
	if err := row.Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: save slot %q", common.ErrNotFound, slot)
		}
		return nil, fmt.Errorf("failed to load save %q: %w", slot, err)
	}
	return document, nil
}

// ListSaves returns all stored slots, most recently updated first.
func (s *SQLiteStorage) ListSaves(ctx context.Context) ([]SaveInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, LENGTH(document), updated_at
		FROM saves
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []SaveInfo
	for rows.Next() {
		var info SaveInfo
		if err := rows.Scan(&info.Slot, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSave removes a slot, failing if it does not exist.
func (s *SQLiteStorage) DeleteSave(ctx context.Context, slot string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(slot, "slot"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete save %q: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete save %q: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: save slot %q", common.ErrNotFound, slot)
	}
	return nil
}
