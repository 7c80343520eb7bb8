package util

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Window normalises a limit/offset pair the way the leaderboard endpoints
// expect it.
func Window(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Calculate turns a 1-based page into an offset window.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	size, _ = Window(size, 0)
	return (page - 1) * size, size
}
