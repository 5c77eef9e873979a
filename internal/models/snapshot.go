package models

import "time"

type Snapshot struct {
	ID        string    `json:"id"`
	Document  Document  `json:"document"`
	FetchedAt time.Time `json:"fetched_at"`
}

type SnapshotStatistics struct {
	Total        int            `json:"total"`
	GroupBy      string         `json:"group_by,omitempty"`
	Distribution map[string]int `json:"distribution,omitempty"`
}

type SnapshotResponse struct {
	Resource    string              `json:"resource"`
	Results     []Snapshot          `json:"results"`
	Statistics  *SnapshotStatistics `json:"statistics"`
	LastUpdated *time.Time          `json:"last_updated,omitempty"`
}
