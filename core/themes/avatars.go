package themes

// Avatar is a named avatar option.
type Avatar struct {
	Seed  string `json:"seed"`
	Glyph string `json:"glyph"`
	Name  string `json:"name"`
}

// DefaultAvatarSeed is applied when an account has no stored preference.
const DefaultAvatarSeed = "default"

// defaultGlyph is rendered for any seed outside the known set.
const defaultGlyph = "👤"

var avatars = map[string]Avatar{
	"felix":   {Seed: "felix", Glyph: "🐱", Name: "Felix"},
	"max":     {Seed: "max", Glyph: "🐶", Name: "Max"},
	"luna":    {Seed: "luna", Glyph: "🦊", Name: "Luna"},
	"charlie": {Seed: "charlie", Glyph: "🐻", Name: "Charlie"},
	"bella":   {Seed: "bella", Glyph: "🐰", Name: "Bella"},
	"oliver":  {Seed: "oliver", Glyph: "🦁", Name: "Oliver"},
	"lucy":    {Seed: "lucy", Glyph: "🐼", Name: "Lucy"},
	"milo":    {Seed: "milo", Glyph: "🐨", Name: "Milo"},
	"daisy":   {Seed: "daisy", Glyph: "🦄", Name: "Daisy"},
}

var avatarOrder = []string{"felix", "max", "luna", "charlie", "bella", "oliver", "lucy", "milo", "daisy"}

// Glyph resolves a seed to its glyph. Unknown seeds, including the stored
// "default", fall back to the default glyph; storage never validates seeds.
func Glyph(seed string) string {
	if avatar, ok := avatars[seed]; ok {
		return avatar.Glyph
	}
	return defaultGlyph
}

// Avatars returns all named avatar options in catalog order.
func Avatars() []Avatar {
	list := make([]Avatar, 0, len(avatarOrder))
	for _, seed := range avatarOrder {
		list = append(list, avatars[seed])
	}
	return list
}
