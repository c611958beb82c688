package models

// ImportFormat identifies the upload file type
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportRowError describes a single rejected row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult summarizes a catalog import run. Valid rows are committed even
// when other rows fail validation.
type ImportResult struct {
	Success      bool             `json:"success"`
	TotalRows    int              `json:"totalRows"`
	CreatedCount int              `json:"createdCount"`
	FailedCount  int              `json:"failedCount"`
	Errors       []ImportRowError `json:"errors"`
	CreatedIDs   []string         `json:"createdIds"`
	ProcessingMs int64            `json:"processingMs"`
}
