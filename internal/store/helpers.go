package store

// maxListLimit caps limit values for list queries.
const maxListLimit = 100

// clampPage normalizes a limit/offset pair for list queries.
func clampPage(limit, offset, fallback int) (int, int) {
	if limit <= 0 {
		limit = fallback
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
