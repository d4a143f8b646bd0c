package audit

import "testing"

func strPtr(s string) *string {
	return &s
}

func TestDiffOnlyChangedFields(t *testing.T) {
	fields := []string{"status", "location"}
	current := map[string]*string{
		"status":   strPtr("Active"),
		"location": strPtr("Field A"),
	}
	proposed := map[string]*string{
		"status":   strPtr("Active"),
		"location": strPtr("Field B"),
	}

	deltas := Diff(fields, current, proposed)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(deltas))
	}
	if deltas[0].Field != "location" {
		t.Fatalf("expected location delta, got %s", deltas[0].Field)
	}
	if deltas[0].Old == nil || *deltas[0].Old != "Field A" {
		t.Fatalf("unexpected old value %v", deltas[0].Old)
	}
	if deltas[0].New == nil || *deltas[0].New != "Field B" {
		t.Fatalf("unexpected new value %v", deltas[0].New)
	}
}

func TestDiffSkipsAbsentFields(t *testing.T) {
	fields := []string{"name", "category"}
	current := map[string]*string{
		"name":     strPtr("Top Drive"),
		"category": strPtr("Drilling"),
	}
	proposed := map[string]*string{
		"name": strPtr("Top Drive Mk II"),
	}

	deltas := Diff(fields, current, proposed)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(deltas))
	}
	if deltas[0].Field != "name" {
		t.Fatalf("expected name delta, got %s", deltas[0].Field)
	}
}

func TestDiffIdenticalPatchIsEmpty(t *testing.T) {
	fields := []string{"status", "notes"}
	current := map[string]*string{
		"status": strPtr("Active"),
		"notes":  nil,
	}
	proposed := map[string]*string{
		"status": strPtr("Active"),
		"notes":  nil,
	}

	if deltas := Diff(fields, current, proposed); len(deltas) != 0 {
		t.Fatalf("expected no deltas, got %d", len(deltas))
	}
}

func TestDiffEmptyStringClearsField(t *testing.T) {
	fields := []string{"notes"}
	current := map[string]*string{"notes": strPtr("old note")}
	proposed := map[string]*string{"notes": strPtr("")}

	deltas := Diff(fields, current, proposed)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(deltas))
	}
	if deltas[0].New != nil {
		t.Fatalf("expected empty string to normalize to nil, got %v", *deltas[0].New)
	}
}

func TestDiffNilEqualsEmptyString(t *testing.T) {
	fields := []string{"notes"}
	current := map[string]*string{"notes": nil}
	proposed := map[string]*string{"notes": strPtr("")}

	if deltas := Diff(fields, current, proposed); len(deltas) != 0 {
		t.Fatalf("expected no delta when clearing an already-null field, got %d", len(deltas))
	}
}

func TestDiffPreservesFieldOrder(t *testing.T) {
	fields := []string{"name", "category", "location"}
	current := map[string]*string{
		"name":     strPtr("a"),
		"category": strPtr("b"),
		"location": strPtr("c"),
	}
	proposed := map[string]*string{
		"location": strPtr("z"),
		"name":     strPtr("x"),
	}

	deltas := Diff(fields, current, proposed)
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(deltas))
	}
	if deltas[0].Field != "name" || deltas[1].Field != "location" {
		t.Fatalf("expected field order name,location got %s,%s", deltas[0].Field, deltas[1].Field)
	}
}
