package shared

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors accumulates validation failures so a caller can report every
// problem in one round trip instead of failing on the first.
type FieldErrors []FieldError

// Add appends a field-level failure.
func (e *FieldErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Merge appends all failures from another collection.
func (e *FieldErrors) Merge(other FieldErrors) {
	*e = append(*e, other...)
}

// HasErrors reports whether any failure was recorded.
func (e FieldErrors) HasErrors() bool { return len(e) > 0 }

// ByField returns the failures keyed by field, first message wins.
func (e FieldErrors) ByField() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
