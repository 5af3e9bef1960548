package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/auto72auto/wisebricks/internal/models"
)

// SetView is the canonical set shape handed to ranking and to response
// assembly. Nil means the attribute is genuinely unknown.
type SetView struct {
	SetNumber     string   `json:"set_number"`
	Title         string   `json:"title"`
	Pieces        *int     `json:"pieces"`
	ReleaseYear   *int     `json:"release_year"`
	Theme         *string  `json:"theme"`
	RRPGBP        *float64 `json:"rrp_gbp"`
	ImageThumbURL *string  `json:"image_thumb_url"`
	ImageBoxURL   *string  `json:"image_box_url"`
	ImageHeroURL  *string  `json:"image_hero_url"`
	Variant       int      `json:"variant"`
}

// ThemeOrUnknown canonicalizes empty or whitespace-only themes to "Unknown"
// for faceting.
func ThemeOrUnknown(theme *string) string {
	if theme == nil {
		return "Unknown"
	}
	t := strings.TrimSpace(*theme)
	if t == "" {
		return "Unknown"
	}
	return t
}

// NormalizeSet canonicalizes a stored catalog row.
func NormalizeSet(s models.Set) SetView {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = "Untitled set"
	}
	return SetView{
		SetNumber:     s.SetNumber,
		Title:         title,
		Pieces:        s.Pieces,
		ReleaseYear:   s.ReleaseYear,
		Theme:         cleanString(s.Theme),
		RRPGBP:        s.RRPGBP,
		ImageThumbURL: cleanString(s.ImageThumbURL),
		ImageBoxURL:   cleanString(s.ImageBoxURL),
		ImageHeroURL:  cleanString(s.ImageHeroURL),
		Variant:       s.Variant,
	}
}

// NormalizeRow canonicalizes a raw result row. It tolerates alternate field
// names (name vs title, theme_group vs theme) and stringly-typed numerics.
func NormalizeRow(row map[string]interface{}) SetView {
	title := firstNonEmpty(row, "title", "name")
	if title == "" {
		title = "Untitled set"
	}
	variant := 0
	if v := CoerceInt(first(row, "variant")); v != nil {
		variant = *v
	}
	return SetView{
		SetNumber:     firstNonEmpty(row, "set_number"),
		Title:         title,
		Pieces:        CoerceInt(first(row, "pieces")),
		ReleaseYear:   CoerceInt(first(row, "release_year")),
		Theme:         optString(firstNonEmpty(row, "theme", "theme_group")),
		RRPGBP:        CoerceFloat(first(row, "rrp_gbp")),
		ImageThumbURL: optString(firstNonEmpty(row, "image_thumb_url")),
		ImageBoxURL:   optString(firstNonEmpty(row, "image_box_url")),
		ImageHeroURL:  optString(firstNonEmpty(row, "image_hero_url")),
		Variant:       variant,
	}
}

// CoerceInt parses ints out of whatever the driver handed back, stripping
// junk characters from strings ("1,234 pcs" -> 1234).
func CoerceInt(v interface{}) *int {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		return &n
	case int32:
		i := int(n)
		return &i
	case int64:
		i := int(n)
		return &i
	case float32:
		i := int(n)
		return &i
	case float64:
		i := int(n)
		return &i
	default:
		s := stripNonNumeric(fmt.Sprint(v), false)
		if s == "" {
			return nil
		}
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &parsed
	}
}

// CoerceFloat is CoerceInt's decimal counterpart.
func CoerceFloat(v interface{}) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		f := float64(n)
		return &f
	case int32:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case float32:
		f := float64(n)
		return &f
	case float64:
		return &n
	default:
		s := stripNonNumeric(fmt.Sprint(v), true)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &parsed
	}
}

func stripNonNumeric(s string, keepDot bool) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '-' || (keepDot && r == '.') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func first(row map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v
		}
	}
	return nil
}

func firstNonEmpty(row map[string]interface{}, keys ...string) string {
	v := first(row, keys...)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cleanString(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
