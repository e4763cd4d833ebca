// Package fop provides filter, order and pagination values shared by the
// repositories and their stores.
package fop

import (
	"fmt"
	"strconv"
)

// By represents a field to order by and a direction.
type By struct {
	Field     string
	Direction string
}

// NewBy constructs a By value.
func NewBy(field, direction string) By {
	return By{
		Field:     field,
		Direction: direction,
	}
}

// PageStringCursor represents the requested items per page with a string
// primary key cursor.
type PageStringCursor struct {
	Limit  int
	Cursor string
}

// PageInfoStringCursor returns pagination data. Every slice query should
// return page info.
type PageInfoStringCursor struct {
	Limit      int    `json:"limit,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
	PageTotal  int    `json:"pageTotal,omitempty"`
}

// ParsePageStringCursor parses limit and cursor query values. An empty limit
// means no paging: the caller receives the full result set.
func ParsePageStringCursor(pageLimit string, cursor string) (PageStringCursor, error) {
	if pageLimit == "" {
		return PageStringCursor{Cursor: cursor}, nil
	}

	limit, err := strconv.Atoi(pageLimit)
	if err != nil {
		return PageStringCursor{}, fmt.Errorf("page limit conversion: %w", err)
	}

	if limit <= 0 {
		return PageStringCursor{}, fmt.Errorf("rows value too small, must be larger than 0")
	}

	if limit > 100 {
		return PageStringCursor{}, fmt.Errorf("rows value too large, must be less than 100")
	}

	return PageStringCursor{
		Limit:  limit,
		Cursor: cursor,
	}, nil
}
