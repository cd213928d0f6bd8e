package pagination

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	DefaultMaxSize    = 100
)

var (
	ErrInvalidPageNumber  = errors.New("page number must be at least 1")
	ErrInvalidPageSize    = errors.New("page size must be greater than zero")
	ErrPageSizeTooLarge   = errors.New("page size is too large")
	ErrPageNumberTooLarge = errors.New("page number is too large")
)

// Page describes where a page sits within a filtered result set.
type Page struct {
	TotalCount      int64
	PageNumber      int
	PageSize        int
	TotalPages      int
	HasPreviousPage bool
	HasNextPage     bool
}

// Result is one page of items.
type Result[T any] struct {
	Items []T
	Page
}

// Validate checks the requested page bounds. maxSize <= 0 disables the
// upper bound on the page size.
func Validate(pageNumber, pageSize, maxSize int) error {
	if pageNumber < 1 {
		return ErrInvalidPageNumber
	}
	if pageSize <= 0 {
		return ErrInvalidPageSize
	}
	if maxSize > 0 && pageSize > maxSize {
		return fmt.Errorf("%w: maximum is %d", ErrPageSizeTooLarge, maxSize)
	}
	// Offset must fit in an int.
	if pageNumber-1 > math.MaxInt/pageSize {
		return ErrPageNumberTooLarge
	}
	return nil
}

// Offset is the number of rows that precede the page.
func Offset(pageNumber, pageSize int) int {
	return (pageNumber - 1) * pageSize
}

// New computes the page metadata for totalCount matching rows.
func New(totalCount int64, pageNumber, pageSize int) (Page, error) {
	if err := Validate(pageNumber, pageSize, 0); err != nil {
		return Page{}, err
	}

	size := int64(pageSize)
	totalPages := int((totalCount + size - 1) / size)

	return Page{
		TotalCount:      totalCount,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}, nil
}
