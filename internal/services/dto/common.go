package dto

import (
	"encoding/json"
	"math"

	"gorm.io/datatypes"
)

// Pagination is the list-envelope metadata every paged endpoint returns.
type Pagination struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func jsonStrings(raw datatypes.JSON) []string {
	var values []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &values)
	}
	return values
}
