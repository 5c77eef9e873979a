package stats

import (
	"github.com/rm-hull/medevents-gateway/internal/models"
)

const unknown = "(none)"

// Derive summarises snapshots, optionally counting them by a document field
// such as an event's category or a hospital's type.
func Derive(snapshots []models.Snapshot, groupBy string) *models.SnapshotStatistics {
	stats := &models.SnapshotStatistics{
		Total:   len(snapshots),
		GroupBy: groupBy,
	}
	if groupBy == "" {
		return stats
	}

	stats.Distribution = make(map[string]int)
	for _, snapshot := range snapshots {
		key := snapshot.Document.Field(groupBy)
		if key == "" {
			key = unknown
		}
		stats.Distribution[key]++
	}

	return stats
}
