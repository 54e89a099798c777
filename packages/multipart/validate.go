package multipart

import "fmt"

// CheckFieldNames rejects field names that cannot be placed inside a
// Content-Disposition header: empty names, control characters, the
// double quote, and anything outside ASCII. Values are not checked.
// The first offending name fails the whole set.
func CheckFieldNames(fields map[string]string) error {
	for name := range fields {
		if name == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidFieldName)
		}
		for _, r := range name {
			if r < 32 || r == '"' || r > 127 {
				return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
			}
		}
	}
	return nil
}
