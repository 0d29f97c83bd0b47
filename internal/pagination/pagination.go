// Package pagination derives page windows for the product listing route.
// Malformed page or limit values never error; they silently degrade to the
// defaults.
package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is a resolved page window.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Parse resolves raw page/limit query values. Non-numeric or non-positive
// input falls back to the defaults.
func Parse(pageRaw, limitRaw string) Params {
	page := parsePositive(pageRaw, DefaultPage)
	limit := parsePositive(limitRaw, DefaultLimit)
	return Params{
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
	}
}

// TotalPages returns ceil(totalItems / limit).
func TotalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((totalItems + int64(limit) - 1) / int64(limit))
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
