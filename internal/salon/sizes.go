package salon

import "fmt"

// Size groups dogs by the grooming capacity they consume.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Units returns the capacity units a dog of this size consumes in a slot.
func (s Size) Units() int {
	if s == SizeLarge {
		return 2
	}
	return 1
}

// ParseSize validates a size string from an external request.
func ParseSize(v string) (Size, error) {
	switch Size(v) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(v), nil
	}
	return "", fmt.Errorf("invalid dog size %q (want small, medium or large)", v)
}
