package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PaletteColor is one entry of the fixed colour palette shared by buckets and tags.
type PaletteColor struct {
	ID   int
	Name string
}

var Palette = []PaletteColor{
	{ID: 1, Name: "gray"},
	{ID: 2, Name: "red"},
	{ID: 3, Name: "orange"},
	{ID: 4, Name: "green"},
	{ID: 5, Name: "blue"},
	{ID: 6, Name: "purple"},
	{ID: 7, Name: "teal"},
}

// ColorName returns the palette name for id. Unknown ids render as gray.
func ColorName(id int) string {
	for _, c := range Palette {
		if c.ID == id {
			return c.Name
		}
	}
	return Palette[0].Name
}

// ParseColor accepts a palette name or id.
func ParseColor(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		for _, c := range Palette {
			if c.ID == n {
				return n, nil
			}
		}
		return 0, fmt.Errorf("unknown color %d (want 1-%d)", n, len(Palette))
	}
	for _, c := range Palette {
		if c.Name == s {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}
