package models

import "time"

type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PagedList is the normalized list payload returned by every listing
// endpoint, independent of which filters produced it.
type PagedList[T any] struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	Results    []T   `json:"results"`
}

// NewPagedList builds a PagedList from a result slice and its total count
func NewPagedList[T any](results []T, total int64, page, pageSize int) PagedList[T] {
	if results == nil {
		results = []T{}
	}
	return PagedList[T]{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
		Results:    results,
	}
}
