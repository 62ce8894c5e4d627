package enums

import "fmt"

// EntityKind names a cacheable catalog collection. Cache keys are scoped by
// kind; requesting an unknown kind is a programming error, not user input.
type EntityKind string

const (
	EntityProducts   EntityKind = "products"
	EntityStores     EntityKind = "stores"
	EntityCategories EntityKind = "categories"
)

var validEntityKinds = []EntityKind{
	EntityProducts,
	EntityStores,
	EntityCategories,
}

// String implements fmt.Stringer.
func (k EntityKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known EntityKind.
func (k EntityKind) IsValid() bool {
	for _, candidate := range validEntityKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseEntityKind converts raw input into an EntityKind.
func ParseEntityKind(value string) (EntityKind, error) {
	for _, candidate := range validEntityKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity kind %q", value)
}
