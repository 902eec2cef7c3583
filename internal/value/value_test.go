package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"false", NewBool(false), false},
		{"true", NewBool(true), true},
		{"zero", NewNumber(0), false},
		{"nonzero", NewNumber(-1), true},
		{"empty string", NewString(""), false},
		{"string", NewString("x"), true},
		{"empty array", NewArray(NewArrayOf()), false},
		{"array", NewArray(NewArrayOf(Null)), true},
		{"object", NewObject(NewEmptyObject()), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Truthy(c.v); got != c.want {
				t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestStringOfNumber(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		1:      "1",
		-2.5:   "-2.5",
		100:    "100",
	}
	for n, want := range cases {
		if got := StringOf(NewNumber(n)); got != want {
			t.Errorf("StringOf(%v) = %q, want %q", n, got, want)
		}
	}
}

func TestJSONOfObjectKeysSorted(t *testing.T) {
	o1 := NewEmptyObject()
	o1.Set("b", NewNumber(2))
	o1.Set("a", NewNumber(1))

	o2 := NewEmptyObject()
	o2.Set("a", NewNumber(1))
	o2.Set("b", NewNumber(2))

	if JSONOf(NewObject(o1), "") != JSONOf(NewObject(o2), "") {
		t.Errorf("json_of must be stable under key reordering")
	}
	if got, want := JSONOf(NewObject(o1), ""), `{"a":1,"b":2}`; got != want {
		t.Errorf("JSONOf = %q, want %q", got, want)
	}
}

func TestCompareTotalOrder(t *testing.T) {
	values := []Value{
		Null,
		NewBool(false),
		NewBool(true),
		NewNumber(1),
		NewNumber(2),
		NewString("a"),
		NewString("b"),
	}
	for i := range values {
		for j := range values {
			c := Compare(values[i], values[j])
			switch {
			case i < j && c >= 0:
				t.Errorf("expected values[%d] < values[%d]", i, j)
			case i == j && c != 0:
				t.Errorf("expected values[%d] == values[%d]", i, j)
			case i > j && c <= 0:
				t.Errorf("expected values[%d] > values[%d]", i, j)
			}
		}
	}
}

func TestEqualAgreesWithCompare(t *testing.T) {
	a, b := NewNumber(3), NewNumber(3)
	if !Equal(a, b) {
		t.Errorf("Equal should hold for equal numbers")
	}
	if Equal(a, NewNumber(4)) {
		t.Errorf("Equal should not hold for distinct numbers")
	}
}

func TestParseNumber(t *testing.T) {
	if n, ok := ParseNumber("3.14"); !ok || n != 3.14 {
		t.Errorf("ParseNumber(3.14) = %v, %v", n, ok)
	}
	if _, ok := ParseNumber("not a number"); ok {
		t.Errorf("ParseNumber should reject garbage")
	}
}

func TestParseDatetime(t *testing.T) {
	if _, ok := ParseDatetime("2024-01-02"); !ok {
		t.Errorf("ParseDatetime should accept a date-only ISO string")
	}
	if _, ok := ParseDatetime("2024-01-02T03:04:05Z"); !ok {
		t.Errorf("ParseDatetime should accept a UTC ISO datetime")
	}
	if _, ok := ParseDatetime("not a date"); ok {
		t.Errorf("ParseDatetime should reject garbage")
	}
}
