package domain

// Variant is one arm of a donation-flow experiment
type Variant string

const (
	VariantControl Variant = "control"
	VariantA       Variant = "variant_a"
	VariantB       Variant = "variant_b"
)

// Variants is the ordered bucket list used for hash assignment. Reordering or
// resizing it remaps every existing user; version the experiment ID instead.
var Variants = [...]Variant{VariantControl, VariantA, VariantB}

// ParseVariant returns the variant named s, or false if s is not one of Variants
func ParseVariant(s string) (Variant, bool) {
	for _, v := range Variants {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

func (v Variant) String() string {
	return string(v)
}

// AssignmentKey identifies one user's enrollment in one experiment
type AssignmentKey struct {
	UserID       string
	ExperimentID string
}
