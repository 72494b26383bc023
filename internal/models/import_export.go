package models

import "time"

// ImportValidationError describes a single rejected row of a question
// import file.
type ImportValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

type ImportSummary struct {
	TotalRows        int                     `json:"totalRows"`
	ProcessedRows    int                     `json:"processedRows"`
	SuccessCount     int                     `json:"successCount"`
	ErrorCount       int                     `json:"errorCount"`
	CreatedQuestions []string                `json:"createdQuestions"`
	Errors           []ImportValidationError `json:"errors"`
	ProcessingTime   time.Duration           `json:"processingTime"`
}
