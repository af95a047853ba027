package storage

import (
	"fmt"
)

// DailyStats represents per-day translation counts.
type DailyStats struct {
	Date           string
	Total          int
	SuccessCount   int
	TruncatedCount int
	BlockedCount   int
	FailedCount    int
}

// OverallStats represents totals over the queried period.
type OverallStats struct {
	Total            int
	SuccessCount     int
	TruncatedCount   int
	BlockedCount     int
	FailedCount      int
	TotalSourceChars int64
	AvgLatencyMs     float64
	AvgAttempts      float64
}

// ModelStats represents statistics grouped by model.
type ModelStats struct {
	Model        string
	Total        int
	SuccessCount int
	AvgLatencyMs float64
}

// GetOverallStats returns totals for the last N days.
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN outcome = 'truncated' THEN 1 ELSE 0 END), 0) as truncated_count,
			COALESCE(SUM(CASE WHEN outcome = 'blocked' THEN 1 ELSE 0 END), 0) as blocked_count,
			COALESCE(SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END), 0) as failed_count,
			COALESCE(SUM(source_chars), 0) as total_source_chars,
			COALESCE(AVG(latency_ms), 0) as avg_latency_ms,
			COALESCE(AVG(attempts), 0) as avg_attempts
		FROM translations
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var s OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&s.Total, &s.SuccessCount, &s.TruncatedCount, &s.BlockedCount, &s.FailedCount,
		&s.TotalSourceChars, &s.AvgLatencyMs, &s.AvgAttempts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}
	return &s, nil
}

// GetDailyStats returns per-day counts for the last N days, newest first.
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total,
			SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN outcome = 'truncated' THEN 1 ELSE 0 END) as truncated_count,
			SUM(CASE WHEN outcome = 'blocked' THEN 1 ELSE 0 END) as blocked_count,
			SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END) as failed_count
		FROM translations
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		if err := rows.Scan(&s.Date, &s.Total, &s.SuccessCount, &s.TruncatedCount, &s.BlockedCount, &s.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetModelStats returns per-model counts for the last N days.
func (db *DB) GetModelStats(days int) ([]ModelStats, error) {
	query := `
		SELECT
			model,
			COUNT(*) as total,
			SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END) as success_count,
			COALESCE(AVG(latency_ms), 0) as avg_latency_ms
		FROM translations
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY model
		ORDER BY total DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query model stats: %w", err)
	}
	defer rows.Close()

	var stats []ModelStats
	for rows.Next() {
		var s ModelStats
		if err := rows.Scan(&s.Model, &s.Total, &s.SuccessCount, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("failed to scan model stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
