// Package themes holds the static theme preset and avatar tables.
package themes

// Gradient is the two-color pair derived from a theme.
type Gradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Colors holds the style values a theme applies.
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Theme is a named visual preset.
type Theme struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Colors   Colors   `json:"colors"`
	Gradient Gradient `json:"gradient"`
}

// DefaultThemeID is applied when an account has no stored preference.
const DefaultThemeID = "indigo"

// presets is the closed set of known themes.
var presets = map[string]Theme{
	"indigo": {
		ID:       "indigo",
		Name:     "Indigo Dream",
		Colors:   Colors{Primary: "oklch(0.55 0.22 280)", Secondary: "oklch(0.65 0.18 280)"},
		Gradient: Gradient{From: "#ec4899", To: "#f97316"},
	},
	"teal": {
		ID:       "teal",
		Name:     "Teal Ocean",
		Colors:   Colors{Primary: "oklch(0.55 0.15 195)", Secondary: "oklch(0.65 0.12 195)"},
		Gradient: Gradient{From: "#14b8a6", To: "#3b82f6"},
	},
	"sunset": {
		ID:       "sunset",
		Name:     "Sunset Rose",
		Colors:   Colors{Primary: "oklch(0.55 0.22 25)", Secondary: "oklch(0.65 0.18 40)"},
		Gradient: Gradient{From: "#ef4444", To: "#f97316"},
	},
	"forest": {
		ID:       "forest",
		Name:     "Forest Green",
		Colors:   Colors{Primary: "oklch(0.45 0.15 145)", Secondary: "oklch(0.55 0.12 145)"},
		Gradient: Gradient{From: "#15803d", To: "#eab308"},
	},
	"purple": {
		ID:       "purple",
		Name:     "Deep Purple",
		Colors:   Colors{Primary: "oklch(0.50 0.22 300)", Secondary: "oklch(0.60 0.18 300)"},
		Gradient: Gradient{From: "#a855f7", To: "#14b8a6"},
	},
	"midnight": {
		ID:       "midnight",
		Name:     "Midnight Black",
		Colors:   Colors{Primary: "oklch(0.25 0.05 280)", Secondary: "oklch(0.35 0.08 280)"},
		Gradient: Gradient{From: "#000000", To: "#6366f1"},
	},
}

// presetOrder fixes the catalog listing order.
var presetOrder = []string{"indigo", "teal", "sunset", "forest", "purple", "midnight"}

// Lookup returns the preset for the given identifier.
func Lookup(id string) (Theme, bool) {
	theme, ok := presets[id]
	return theme, ok
}

// Default returns the default preset.
func Default() Theme {
	return presets[DefaultThemeID]
}

// List returns all presets in catalog order.
func List() []Theme {
	list := make([]Theme, 0, len(presetOrder))
	for _, id := range presetOrder {
		list = append(list, presets[id])
	}
	return list
}
