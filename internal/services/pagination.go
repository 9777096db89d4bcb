package services

import "math"

const defaultPageSize = 10

// normalizePage clamps page to >=1 and applies the default limit.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

func lastPage(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
