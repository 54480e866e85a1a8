package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumericRoundTrip(t *testing.T) {
	cases := []string{"0", "150", "-80.25", "999999999.99"}

	for _, c := range cases {
		d := decimal.RequireFromString(c)

		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("round trip of %s gave %s", d, got)
		}
	}
}

func TestNumericToDecimalNull(t *testing.T) {
	var d = numericToDecimal(decimalToNumeric(decimal.Zero))
	if !d.IsZero() {
		t.Fatalf("expected zero, got %s", d)
	}
}

func TestTextOrNull(t *testing.T) {
	if textOrNull("").Valid {
		t.Fatalf("empty string should map to NULL")
	}

	v := textOrNull("0300-1234567")
	if !v.Valid || v.String != "0300-1234567" {
		t.Fatalf("unexpected value: %+v", v)
	}
}
