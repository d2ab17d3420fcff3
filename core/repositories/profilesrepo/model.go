package profilesrepo

import "time"

// Default values for a profile that has never been written.
const (
	DefaultTheme      = "indigo"
	DefaultAvatarSeed = "default"
)

// Profile is the single per-account preferences row.
type Profile struct {
	UserID     string    `db:"user_id" json:"userId"`
	Theme      string    `db:"theme" json:"theme"`
	AvatarSeed string    `db:"avatar_seed" json:"avatarSeed"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// UpsertProfile carries the fields to set on the preferences row. Nil
// fields keep their stored (or default) value.
type UpsertProfile struct {
	Theme      *string
	AvatarSeed *string
}
