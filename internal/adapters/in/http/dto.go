package http

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderRecord is one record of a ranking request. OrderValue accepts a JSON
// number, a numeric string or null.
type OrderRecord struct {
	Region     string          `json:"region"`
	OrderValue json.RawMessage `json:"orderValue"`
}

// RegionAverage is one row of a ranking response. AverageSpending is null when
// none of the region's orders had a value.
type RegionAverage struct {
	Region          string       `json:"region"`
	AverageSpending *json.Number `json:"averageSpending"`
	OrderCount      int          `json:"orderCount"`
}

// NewImport asks for one landing file to be imported.
type NewImport struct {
	File string `json:"file"`
}

// Import reports the outcome of an import run.
type Import struct {
	ID         uuid.UUID `json:"id"`
	File       string    `json:"file"`
	Rows       int       `json:"rows"`
	Duplicates int       `json:"duplicates"`
	Loaded     int       `json:"loaded"`
}
