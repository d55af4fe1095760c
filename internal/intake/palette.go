package intake

import (
	"errors"
	"regexp"
	"strings"
)

// MaxPaletteSize caps the chosen color palette.
const MaxPaletteSize = 5

var (
	ErrPaletteFull    = errors.New("palette full")
	ErrDuplicateColor = errors.New("color already in palette")
	ErrInvalidColor   = errors.New("not a 6-digit hex color")
)

var hexColorRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// NormalizeColor canonicalizes a hex string to "#rrggbb" lowercase.
func NormalizeColor(c string) (string, error) {
	if !hexColorRe.MatchString(c) {
		return "", ErrInvalidColor
	}
	c = strings.ToLower(strings.TrimPrefix(c, "#"))
	return "#" + c, nil
}

// AddColor appends a color to the palette if it is valid, the palette is
// not full and the color is not already present. Order of addition is
// preserved.
func AddColor(palette []string, c string) ([]string, error) {
	norm, err := NormalizeColor(c)
	if err != nil {
		return palette, err
	}
	if len(palette) >= MaxPaletteSize {
		return palette, ErrPaletteFull
	}
	for _, existing := range palette {
		if existing == norm {
			return palette, ErrDuplicateColor
		}
	}
	return append(palette, norm), nil
}

// RemoveColor removes the first matching entry. Removal is
// unconditional: removing an absent color is a no-op.
func RemoveColor(palette []string, c string) []string {
	norm, err := NormalizeColor(c)
	if err != nil {
		return palette
	}
	for i, existing := range palette {
		if existing == norm {
			return append(palette[:i:i], palette[i+1:]...)
		}
	}
	return palette
}

// ValidatePalette checks a full palette against the invariants: size cap,
// per-entry hex validity, no duplicates.
func ValidatePalette(palette []string) error {
	if len(palette) > MaxPaletteSize {
		return ErrPaletteFull
	}
	seen := make(map[string]bool, len(palette))
	for _, c := range palette {
		norm, err := NormalizeColor(c)
		if err != nil {
			return err
		}
		if seen[norm] {
			return ErrDuplicateColor
		}
		seen[norm] = true
	}
	return nil
}
