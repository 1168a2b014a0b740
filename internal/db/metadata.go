//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/sales-metrics/internal/logging"
	"github.com/pgEdge/sales-metrics/pkg/version"
)

const metadataTable = "salesmetrics_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salesmetrics_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// DatasetInfo describes a loaded weekly sales dataset.
type DatasetInfo struct {
	DatasetID string
	Rows      int
	Stores    int
	LoadedAt  time.Time
}

// SaveDatasetInfo records a freshly loaded dataset, assigning it a new
// dataset id. Reports log the id so output can be traced to the exact
// load it ran against.
func SaveDatasetInfo(ctx context.Context, pool *pgxpool.Pool, rows, stores int) (string, error) {
	if _, err := pool.Exec(ctx, createMetadataTableSQL); err != nil {
		return "", fmt.Errorf("failed to create metadata table: %w", err)
	}

	datasetID := uuid.NewString()
	metadata := map[string]string{
		"dataset_id": datasetID,
		"rows":       strconv.Itoa(rows),
		"stores":     strconv.Itoa(stores),
		"loaded_at":  time.Now().UTC().Format(time.RFC3339),
		"version":    version.Short(),
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO salesmetrics_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return "", fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("dataset_id", datasetID).
		Int("rows", rows).
		Msg("Saved dataset metadata")

	return datasetID, nil
}

// GetDatasetInfo retrieves the loaded dataset's metadata. An error means
// the database has not been seeded.
func GetDatasetInfo(ctx context.Context, pool *pgxpool.Pool) (*DatasetInfo, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM salesmetrics_metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	info := &DatasetInfo{DatasetID: metadata["dataset_id"]}
	if info.DatasetID == "" {
		return nil, fmt.Errorf("no dataset metadata found")
	}
	info.Rows, _ = strconv.Atoi(metadata["rows"])
	info.Stores, _ = strconv.Atoi(metadata["stores"])
	if t, err := time.Parse(time.RFC3339, metadata["loaded_at"]); err == nil {
		info.LoadedAt = t
	}
	return info, nil
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
