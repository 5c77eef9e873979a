package internal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/rm-hull/medevents-gateway/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed sql/upsert_snapshot.sql
var upsertSnapshotSQL string

//go:embed sql/delete_stale_snapshots.sql
var deleteStaleSnapshotsSQL string

//go:embed sql/list_snapshots.sql
var listSnapshotsSQL string

//go:embed sql/last_updated.sql
var lastUpdatedSQL string

const (
	RESOURCE_EVENTS    = "events"
	RESOURCE_HOSPITALS = "hospitals"
)

// SnapshotRepository keeps the most recently synced copy of each backend
// resource so it can be served while the backend is unavailable.
type SnapshotRepository interface {
	Upsert(resource string, batch []models.Document, fetchedAt time.Time) (int, error)
	List(resource string) ([]models.Snapshot, error)
	LastUpdated(resource string) (*time.Time, error)
	Check() checks.Check
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &sqliteRepository{
		db: db,
	}
}

// Upsert replaces the stored snapshot of a resource with batch. Documents
// without an id are skipped; rows not present in batch are removed.
func (repo *sqliteRepository) Upsert(resource string, batch []models.Document, fetchedAt time.Time) (int, error) {
	tx, err := repo.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("error rolling back transaction: %v", rbErr)
			}
		}
	}()

	stmt, err := tx.Prepare(upsertSnapshotSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Printf("failed to close statement: %v", err)
		}
	}()

	fetchedAtMillis := fetchedAt.UnixMilli()
	count := 0
	for _, doc := range batch {
		id, ok := doc.ID()
		if !ok {
			log.Printf("skipping %s document without id", resource)
			continue
		}

		var payload []byte
		payload, err = json.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal %s/%s: %w", resource, id, err)
		}

		_, err = stmt.Exec(resource, id, string(payload), fetchedAtMillis)
		if err != nil {
			return 0, fmt.Errorf("failed to execute individual upsert: %w", err)
		}
		count++
	}

	_, err = tx.Exec(deleteStaleSnapshotsSQL, resource, fetchedAtMillis)
	if err != nil {
		return 0, fmt.Errorf("failed to remove stale %s: %w", resource, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return count, nil
}

func (repo *sqliteRepository) List(resource string) ([]models.Snapshot, error) {
	rows, err := repo.db.Query(listSnapshotsSQL, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list query: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	results := make([]models.Snapshot, 0)
	for rows.Next() {
		var snapshot models.Snapshot
		var payload string
		var fetchedAtMillis int64
		if err := rows.Scan(&snapshot.ID, &payload, &fetchedAtMillis); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if snapshot.Document, err = models.DecodeDocument([]byte(payload)); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", resource, snapshot.ID, err)
		}
		snapshot.FetchedAt = time.UnixMilli(fetchedAtMillis).UTC()
		results = append(results, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return results, nil
}

func (repo *sqliteRepository) LastUpdated(resource string) (*time.Time, error) {
	var fetchedAtMillis sql.NullInt64
	if err := repo.db.QueryRow(lastUpdatedSQL, resource).Scan(&fetchedAtMillis); err != nil {
		return nil, fmt.Errorf("failed to query last update: %w", err)
	}
	if !fetchedAtMillis.Valid {
		return nil, nil
	}

	lastUpdated := time.UnixMilli(fetchedAtMillis.Int64).UTC()
	return &lastUpdated, nil
}

func (repo *sqliteRepository) Check() checks.Check {
	return checks.SqlCheck{Sql: repo.db}
}

func (repo *sqliteRepository) Close() error {
	return repo.db.Close()
}
