// Package service implements the graph query and mutation operations on top of the repositories.
package service

import "math"

// PageSize is the fixed number of rows per page for every paged operation.
const PageSize = 5

// MaxPage bounds page numbers so offsets cannot overflow.
const MaxPage = math.MaxInt32

// normalizePage clamps page into [1, MaxPage].
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

func pageOffset(page int) int {
	return (page - 1) * PageSize
}

// totalPages is ceil(total / PageSize).
func totalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + PageSize - 1) / PageSize)
}
