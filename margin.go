package dokufy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-dokufy/internal/config"
)

// Millimeters per unit.
const (
	mmPerInch = 25.4
	mmPerCM   = 10
)

// ParseMargin converts a margin string to millimeters.
// Units are in (x25.4), cm (x10) and mm; a bare number is millimeters.
func ParseMargin(margin string) (float64, error) {
	m := config.MarginPattern.FindStringSubmatch(margin)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, margin)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidMargin, margin, err)
	}
	switch strings.ToLower(m[2]) {
	case "in":
		return value * mmPerInch, nil
	case "cm":
		return value * mmPerCM, nil
	default:
		return value, nil
	}
}

// PageMargins holds the four page margins in millimeters.
type PageMargins struct {
	Top, Right, Bottom, Left float64
}

// PageLayout is the resolved page geometry shared by drivers that style pages.
type PageLayout struct {
	WidthMM, HeightMM float64
	Landscape         bool
	Margins           PageMargins
}

// pageSizesMM maps lower-cased format names to portrait width and height.
var pageSizesMM = map[string][2]float64{
	"a0":      {841, 1189},
	"a1":      {594, 841},
	"a2":      {420, 594},
	"a3":      {297, 420},
	"a4":      {210, 297},
	"a5":      {148, 210},
	"a6":      {105, 148},
	"letter":  {215.9, 279.4},
	"legal":   {215.9, 355.6},
	"tabloid": {279.4, 431.8},
	"ledger":  {431.8, 279.4},
}

// ResolvePageLayout turns the pdf section of the config into millimeters.
// Empty fields fall back to A4 portrait.
func ResolvePageLayout(p PDFConfig) (PageLayout, error) {
	format := strings.ToLower(p.Format)
	if format == "" {
		format = "a4"
	}
	size, ok := pageSizesMM[format]
	if !ok {
		return PageLayout{}, fmt.Errorf("%w: page format %q", ErrUnsupportedFormat, p.Format)
	}

	layout := PageLayout{
		WidthMM:   size[0],
		HeightMM:  size[1],
		Landscape: strings.EqualFold(p.Orientation, "landscape"),
	}
	if layout.Landscape {
		layout.WidthMM, layout.HeightMM = layout.HeightMM, layout.WidthMM
	}

	margins := []struct {
		raw string
		dst *float64
	}{
		{p.MarginTop, &layout.Margins.Top},
		{p.MarginRight, &layout.Margins.Right},
		{p.MarginBottom, &layout.Margins.Bottom},
		{p.MarginLeft, &layout.Margins.Left},
	}
	for _, m := range margins {
		if m.raw == "" {
			continue
		}
		v, err := ParseMargin(m.raw)
		if err != nil {
			return PageLayout{}, err
		}
		*m.dst = v
	}
	return layout, nil
}

// inches converts millimeters to inches for renderers that take inches.
func inches(mm float64) float64 {
	return mm / mmPerInch
}
