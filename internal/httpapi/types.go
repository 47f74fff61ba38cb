package httpapi

import "jobpilot-engine/internal/domain"

// SearchResponse is the wire shape of GET /search.
//
// TotalCount is the deduplicated set actually held in memory.
// TotalResultsAvailable is what an API provider claims exists (may far
// exceed anything retrievable); MaxResultsReturnable is that provider's
// hard cap. Partial distinguishes "nothing matched" from "sources failed".
type SearchResponse struct {
	Success               bool                `json:"success"`
	Jobs                  []domain.JobPosting `json:"jobs"`
	TotalCount            int                 `json:"totalCount"`
	TotalResultsAvailable int                 `json:"totalResultsAvailable,omitempty"`
	MaxResultsReturnable  int                 `json:"maxResultsReturnable,omitempty"`
	Page                  int                 `json:"page"`
	TotalPages            int                 `json:"totalPages"`
	Partial               bool                `json:"partial"`
	Warnings              []string            `json:"warnings,omitempty"`
	Message               string              `json:"message"`
}

// FailResponse is the envelope for client and server errors on /search.
type FailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}
