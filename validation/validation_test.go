package validation

import "testing"

func TestValidators(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	PositiveInt("quantity", 0, v)
	PositiveFloat("amount", -1, v)
	NonNegativeFloat("salary", 0, v)
	RangeFloat("rate", 2, 0, 1, v)
	Valid("role", false, v)
	Match("confirm", "a", "b", v)

	want := map[string]string{
		"name":     "required",
		"quantity": "must_be_positive",
		"amount":   "must_be_positive",
		"rate":     "out_of_range",
		"role":     "invalid_value",
		"confirm":  "mismatch",
	}
	if len(v) != len(want) {
		t.Fatalf("expected %d violations got %d: %v", len(want), len(v), v)
	}
	for field, code := range want {
		if v[field] != code {
			t.Fatalf("field %s: expected %s got %s", field, code, v[field])
		}
	}
}

func TestAddKeepsFirstViolation(t *testing.T) {
	v := make(Violations)
	Required("password", "", v)
	Match("password", "x", "y", v)
	if v["password"] != "required" {
		t.Fatalf("expected first violation kept, got %s", v["password"])
	}
	if (Violations{}).Empty() != true {
		t.Fatalf("expected empty")
	}
}
