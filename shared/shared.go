package shared

import (
	"fmt"
	"math"
	"strings"
)

// CalculateTotalPage returns the number of pages needed to show totalData
// entries at the given page size.
func CalculateTotalPage(totalData, limit int) int {
	if limit <= 0 {
		return 0
	}

	return int(math.Ceil(float64(totalData) / float64(limit)))
}

// BuildCacheKey joins a cache prefix and an identifying key.
func BuildCacheKey(prefix, key string) string {
	return fmt.Sprintf("%s:%s", prefix, key)
}

// ContainsFold reports whether substr is contained in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
