package util

const DefaultPageSize = 10

func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}

// Round2 rounds a monetary amount to cents; applied only at the DTO boundary.
func Round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
