// internal/workers/data-access/query-dataset/models.go
package querydataset

import "youth-employment-chat/internal/models"

// Input names one catalog dataset. History selects the full oldest-first
// series instead of the newest rows up to the catalog limit.
type Input struct {
	DatasetKey string `json:"datasetKey"`
	History    bool   `json:"history,omitempty"`
}

type Output struct {
	DatasetKey         string       `json:"datasetKey"`
	Source             string       `json:"source"`
	Data               []models.Row `json:"data"`
	RowCount           int          `json:"rowCount"`
	QueryExecutionTime int64        `json:"queryExecutionTime"` // milliseconds
}
