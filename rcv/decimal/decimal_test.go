package decimal_test

import (
	"testing"

	"github.com/rcv-tab/rcv-tabulator/rcv/decimal"
)

func TestDivideRoundsTowardZero(t *testing.T) {
	for _, tt := range []struct {
		name  string
		a, b  string
		scale int32
		want  string
	}{
		{
			name:  "surplus fraction from E5",
			a:     "36.6667",
			b:     "70",
			scale: 4,
			want:  "0.5238",
		},
		{
			name:  "exact division",
			a:     "10",
			b:     "2",
			scale: 4,
			want:  "5",
		},
		{
			name:  "droop threshold",
			a:     "10",
			b:     "3",
			scale: 4,
			want:  "3.3333",
		},
		{
			name:  "repeating digits truncate, never round up",
			a:     "1",
			b:     "3",
			scale: 2,
			want:  "0.33",
		},
		{
			name:  "zero numerator",
			a:     "0",
			b:     "5",
			scale: 4,
			want:  "0",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			a := decimal.MustFromString(tt.a)
			b := decimal.MustFromString(tt.b)
			got := decimal.Divide(a, b, tt.scale)
			want := decimal.MustFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Divide(%s, %s, %d) = %s, want %s", tt.a, tt.b, tt.scale, got.String(), want.String())
			}
		})
	}
}

func TestDivideByZero(t *testing.T) {
	got := decimal.Divide(decimal.NewFromInt(5), decimal.Zero(), 4)
	if !got.IsZero() {
		t.Errorf("Divide by zero = %s, want 0", got.String())
	}
}

func TestMultiplyTruncatesExcessDigits(t *testing.T) {
	a := decimal.MustFromString("0.5238")
	b := decimal.MustFromString("70")
	got := decimal.Multiply(a, b, 4)
	want := decimal.MustFromString("36.6660")
	if !got.Equal(want) {
		t.Errorf("Multiply = %s, want %s", got.String(), want.String())
	}
}

func TestMultiplyRoundsDownNotUp(t *testing.T) {
	a := decimal.MustFromString("0.333333")
	b := decimal.MustFromString("3")
	got := decimal.Multiply(a, b, 2)
	want := decimal.MustFromString("0.99")
	if !got.Equal(want) {
		t.Errorf("Multiply = %s, want %s", got.String(), want.String())
	}
}

func TestCeilToInt(t *testing.T) {
	got := decimal.CeilToInt(decimal.MustFromString("33.3334"))
	want := decimal.NewFromInt(34)
	if !got.Equal(want) {
		t.Errorf("CeilToInt = %s, want %s", got.String(), want.String())
	}
}

func TestNewFromStringRejectsNegative(t *testing.T) {
	if _, err := decimal.NewFromString("-1"); err == nil {
		t.Error("expected error constructing a negative Decimal")
	}
}
