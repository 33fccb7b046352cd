package experiment

import (
	"unicode/utf16"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// Hash is a 31-multiplier rolling hash over the UTF-16 code units of s,
// wrapping at 32 bits. It must stay bit-for-bit stable: persisted assignments
// and other services bucket users with the same function.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// bucket maps a hash onto [0, n). The absolute value is taken in 64 bits so
// MinInt32 yields 2147483648 rather than overflowing.
func bucket(h int32, n int) int {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(n))
}

// VariantFor computes the variant for key without consulting any store.
// Empty components are accepted but skew the distribution.
func VariantFor(key domain.AssignmentKey) domain.Variant {
	h := Hash(key.UserID + key.ExperimentID)
	return domain.Variants[bucket(h, len(domain.Variants))]
}
