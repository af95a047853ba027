package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Translation is one recorded translation request with its outcome.
type Translation struct {
	ID          int64
	Timestamp   time.Time
	Model       string
	PromptMode  string
	SourceText  string
	SourceChars int
	Outcome     string
	ResultText  string
	Detail      string
	Attempts    int
	LatencyMs   int64
}

// SaveTranslation saves a translation record and fills in its ID.
func (db *DB) SaveTranslation(t *Translation) error {
	query := `
		INSERT INTO translations (
			model, prompt_mode, source_text, source_chars,
			outcome, result_text, detail, attempts, latency_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		t.Model, t.PromptMode, t.SourceText, t.SourceChars,
		t.Outcome, t.ResultText, t.Detail, t.Attempts, t.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	t.ID = id
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	return nil
}

// GetTranslations retrieves translation history, newest first.
func (db *DB) GetTranslations(limit, offset int) ([]Translation, error) {
	query := `
		SELECT
			id, timestamp, model, prompt_mode, source_text, source_chars,
			outcome, result_text, detail, attempts, latency_ms
		FROM translations
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	var translations []Translation
	for rows.Next() {
		var t Translation
		var detail sql.NullString

		err := rows.Scan(
			&t.ID, &t.Timestamp, &t.Model, &t.PromptMode, &t.SourceText, &t.SourceChars,
			&t.Outcome, &t.ResultText, &detail, &t.Attempts, &t.LatencyMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}

		if detail.Valid {
			t.Detail = detail.String
		}

		translations = append(translations, t)
	}

	return translations, rows.Err()
}

// DeleteTranslation deletes a translation by ID.
func (db *DB) DeleteTranslation(id int64) error {
	result, err := db.conn.Exec(`DELETE FROM translations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("translation not found")
	}

	return nil
}

// GetTranslationCount returns the total number of stored translations.
func (db *DB) GetTranslationCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM translations").Scan(&count)
	return count, err
}
