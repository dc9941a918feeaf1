package settings

import "fmt"

// Template is a format pattern with exactly two slots: a label and a value.
type Template struct {
	pattern string
}

// ParseTemplate validates pattern and returns a Template.
// Only %s and %v verbs are accepted; %% is a literal percent sign.
func ParseTemplate(pattern string) (Template, error) {
	slots := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		if i+1 == len(pattern) {
			return Template{}, fmt.Errorf("%w: dangling %% in %q", ErrInvalidTemplate, pattern)
		}
		i++
		switch pattern[i] {
		case '%':
		case 's', 'v':
			slots++
		default:
			return Template{}, fmt.Errorf("%w: unsupported verb %%%c in %q", ErrInvalidTemplate, pattern[i], pattern)
		}
	}
	if slots != 2 {
		return Template{}, fmt.Errorf("%w: %q has %d slots, want 2", ErrInvalidTemplate, pattern, slots)
	}
	return Template{pattern: pattern}, nil
}

// Format renders label and value into the template.
func (t Template) Format(label, value string) string {
	return fmt.Sprintf(t.pattern, label, value)
}

func (t Template) String() string {
	return t.pattern
}
