// Package gauge parses knitting gauge expressions into a count per 10 cm.
//
// A gauge can be a plain number ("22", already per 10 cm) or a fraction of
// items and a length in either order: "30/4in", "10cm/5", "1/0.5mm". The
// recognized length suffixes are cm, mm, in and the inch mark (").
package gauge

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const cmPerInch = 2.54

// ErrGauge is wrapped by every parse failure this package reports.
var ErrGauge = errors.New("invalid gauge")

var suffixes = []struct {
	suffix string
	toCm   float64
}{
	{"cm", 1.0},
	{"mm", 0.1},
	{`"`, cmPerInch},
	{"in", cmPerInch},
}

type partKind int

const (
	kindLength partKind = iota
	kindItems
)

type part struct {
	kind  partKind
	value float64
}

// Parse converts a gauge expression to a number of stitches or rows per
// 10 cm.
func Parse(s string) (float64, error) {
	left, right, found := strings.Cut(s, "/")
	if !found {
		// No slash: the value is already a count per 10 cm.
		return parseValue(s)
	}

	l, err := parsePart(left)
	if err != nil {
		return 0, err
	}
	r, err := parsePart(right)
	if err != nil {
		return 0, err
	}

	switch {
	case l.kind == kindItems && r.kind == kindLength:
		return l.value / r.value * 10.0, nil
	case l.kind == kindLength && r.kind == kindItems:
		return r.value / l.value * 10.0, nil
	case l.kind == kindItems:
		return 0, fmt.Errorf("%w: both parts of the gauge are stitches or rows", ErrGauge)
	default:
		return 0, fmt.Errorf("%w: both parts of the gauge are a length", ErrGauge)
	}
}

func parsePart(s string) (part, error) {
	for _, suf := range suffixes {
		if rest, ok := strings.CutSuffix(s, suf.suffix); ok {
			v, err := parseValue(rest)
			if err != nil {
				return part{}, err
			}
			return part{kind: kindLength, value: v * suf.toCm}, nil
		}
	}

	// No length suffix, so it is a number of stitches or rows.
	v, err := parseValue(s)
	if err != nil {
		return part{}, err
	}
	return part{kind: kindItems, value: v}, nil
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrGauge, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: gauge %g is too small", ErrGauge, v)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: gauge %g is not finite", ErrGauge, v)
	}
	return v, nil
}
