package audit

// Delta captures one field whose proposed value differs from the stored one.
type Delta struct {
	Field string
	Old   *string
	New   *string
}

// Diff compares proposed field values against the current snapshot and
// returns one delta per changed field, preserving the order of fields.
// Only fields present in proposed are considered; comparison is done on
// string-normalized values so "5" and 5-as-text compare equal. Empty
// proposed strings normalize to nil so they clear the column on write.
func Diff(fields []string, current map[string]*string, proposed map[string]*string) []Delta {
	var deltas []Delta
	for _, field := range fields {
		newValue, ok := proposed[field]
		if !ok {
			continue
		}
		oldValue := current[field]
		if normalize(oldValue) == normalize(newValue) {
			continue
		}
		deltas = append(deltas, Delta{
			Field: field,
			Old:   oldValue,
			New:   emptyToNil(newValue),
		})
	}
	return deltas
}

func normalize(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
