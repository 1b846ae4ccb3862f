package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/redactpdf/internal/redact"
)

// parseRect parses "left,bottom,right,top" into a redact.Rectangle.
func parseRect(s string) (redact.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return redact.Rectangle{}, fmt.Errorf("rect %q: want left,bottom,right,top", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return redact.Rectangle{}, fmt.Errorf("rect %q: %w", s, err)
		}
		vals[i] = v
	}
	return redact.NewRectangle(vals[0], vals[1], vals[2], vals[3]), nil
}

// parseRects parses a --rect flag slice into redact.Rectangles.
func parseRects(rects []string) ([]redact.Rectangle, error) {
	out := make([]redact.Rectangle, 0, len(rects))
	for _, r := range rects {
		rect, err := parseRect(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rect)
	}
	return out, nil
}
