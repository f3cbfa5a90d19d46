package gauge

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12.0},
		{"12.0", 12.0},
		{"5/10cm", 5.0},
		{"5/20cm", 2.5},
		{"10cm/5", 5.0},
		{"1/0.1cm", 100.0},
		{"1/1mm", 100.0},
		{"1/0.5mm", 200.0},
		{`30/4"`, 30.0 / (4 * 2.54) * 10},
		{"30/4in", 30.0 / (4 * 2.54) * 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Parse(%q): got %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMsg string
	}{
		{"both lengths", "12in/6cm", "both parts of the gauge are a length"},
		{"both items", "12/6", "both parts of the gauge are stitches or rows"},
		{"negative", "-1", "too small"},
		{"negative length", "-1cm/1", "too small"},
		{"zero", "0", "too small"},
		{"infinite", "inf", "not finite"},
		{"not a number", "12/foocm", "not a number"},
		{"empty", "", "not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.in)
			}
			if !errors.Is(err, ErrGauge) {
				t.Errorf("error %v is not ErrGauge", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
