package pagination

// CalculateOffset returns the index of the first item of a 1-based page.
//
//   - Page 1, size 12 -> 0
//   - Page 3, size 12 -> 24
func CalculateOffset(page, size int) int {
	return (page - 1) * size
}

// CalculateTotalPages returns ceil(total/size), and at least 1.
func CalculateTotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Window returns the [start, end) bounds of page within n items.
// Pages past the end yield an empty window.
func Window(page, size, n int) (start, end int) {
	start = CalculateOffset(page, size)
	if start < 0 || start >= n {
		return n, n
	}
	return start, min(start+size, n)
}
