// Package preferences holds the per-account theme and avatar selection and
// keeps it synchronized with the stored profile row.
//
// The store is dependency-injected rather than process-global, and sign-out
// has an explicit Reset transition so one account's visual state never
// leaks into the next session.
package preferences

import (
	"context"
	"sync"

	"github.com/luminahq/lumina/core/repositories/profilesrepo"
	"github.com/luminahq/lumina/core/themes"
	"github.com/luminahq/lumina/sdk/logger"
	"github.com/luminahq/lumina/sdk/validation"
)

// Preferences is the resolved visual state for an account. Theme carries
// the stored identifier, which may be outside the known preset set; the
// derived gradient and colors always come from a known preset.
type Preferences struct {
	Theme      string          `json:"theme"`
	ThemeName  string          `json:"themeName"`
	AvatarSeed string          `json:"avatarSeed"`
	Glyph      string          `json:"glyph"`
	Colors     themes.Colors   `json:"colors"`
	Gradient   themes.Gradient `json:"gradient"`
}

// SetThemeResult reports a theme write explicitly instead of assuming
// success. ThemeApplied is false when the identifier was persisted but is
// not a known preset, so the visible gradient did not change.
type SetThemeResult struct {
	Preferences  Preferences `json:"preferences"`
	ThemeApplied bool        `json:"themeApplied"`
}

// ProfileStorer is the slice of the profiles repository the store needs.
type ProfileStorer interface {
	Get(ctx context.Context, userID string) (profilesrepo.Profile, error)
	Upsert(ctx context.Context, userID string, input profilesrepo.UpsertProfile) (profilesrepo.Profile, error)
}

// Store resolves and persists account preferences. It keeps the last good
// resolved state per account so a failed read serves stale-but-consistent
// values instead of an error.
type Store struct {
	log      *logger.Logger
	profiles ProfileStorer

	mu    sync.RWMutex
	cache map[string]Preferences
}

// NewStore creates a preferences store over the profiles repository.
func NewStore(log *logger.Logger, profiles ProfileStorer) *Store {
	return &Store{
		log:      log,
		profiles: profiles,
		cache:    make(map[string]Preferences),
	}
}

// Load returns the account's resolved preferences. A missing row or a
// failed read degrades without error: last good state if cached, defaults
// otherwise.
func (s *Store) Load(ctx context.Context, userID string) Preferences {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.mu.RLock()
		cached, ok := s.cache[userID]
		s.mu.RUnlock()
		if ok {
			return cached
		}
		return defaults()
	}

	prefs := resolve(profile.Theme, profile.AvatarSeed)
	s.put(userID, prefs)
	return prefs
}

// SetTheme persists the theme identifier for the account. Unknown
// identifiers are stored as-is while the applied gradient keeps its
// previous value; the result states whether the preset was applied.
func (s *Store) SetTheme(ctx context.Context, userID string, themeID string) (SetThemeResult, error) {
	profile, err := s.profiles.Upsert(ctx, userID, profilesrepo.UpsertProfile{
		Theme: validation.StringPtr(themeID),
	})
	if err != nil {
		return SetThemeResult{}, err
	}

	prefs := resolve(profile.Theme, profile.AvatarSeed)
	_, applied := themes.Lookup(profile.Theme)

	if !applied {
		// Keep the previously applied visual state for the unknown id.
		s.mu.RLock()
		cached, ok := s.cache[userID]
		s.mu.RUnlock()
		if ok {
			prefs.ThemeName = cached.ThemeName
			prefs.Colors = cached.Colors
			prefs.Gradient = cached.Gradient
		}
	}

	s.put(userID, prefs)

	return SetThemeResult{
		Preferences:  prefs,
		ThemeApplied: applied,
	}, nil
}

// SetAvatar persists the avatar seed for the account. Seeds are not
// validated; unknown seeds fall back to the default glyph only when
// resolved for display.
func (s *Store) SetAvatar(ctx context.Context, userID string, seed string) (Preferences, error) {
	profile, err := s.profiles.Upsert(ctx, userID, profilesrepo.UpsertProfile{
		AvatarSeed: validation.StringPtr(seed),
	})
	if err != nil {
		return Preferences{}, err
	}

	prefs := resolve(profile.Theme, profile.AvatarSeed)
	if _, known := themes.Lookup(profile.Theme); !known {
		s.mu.RLock()
		cached, ok := s.cache[userID]
		s.mu.RUnlock()
		if ok {
			prefs.ThemeName = cached.ThemeName
			prefs.Colors = cached.Colors
			prefs.Gradient = cached.Gradient
		}
	}

	s.put(userID, prefs)
	return prefs, nil
}

// Reset drops the account's cached state. Called on sign-out.
func (s *Store) Reset(userID string) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}

func (s *Store) put(userID string, prefs Preferences) {
	s.mu.Lock()
	s.cache[userID] = prefs
	s.mu.Unlock()
}

// resolve derives display values from stored identifiers. An unknown theme
// identifier keeps the default preset's visuals.
func resolve(themeID string, avatarSeed string) Preferences {
	if themeID == "" {
		themeID = themes.DefaultThemeID
	}
	if avatarSeed == "" {
		avatarSeed = themes.DefaultAvatarSeed
	}

	preset, ok := themes.Lookup(themeID)
	if !ok {
		preset = themes.Default()
	}

	return Preferences{
		Theme:      themeID,
		ThemeName:  preset.Name,
		AvatarSeed: avatarSeed,
		Glyph:      themes.Glyph(avatarSeed),
		Colors:     preset.Colors,
		Gradient:   preset.Gradient,
	}
}

func defaults() Preferences {
	return resolve(themes.DefaultThemeID, themes.DefaultAvatarSeed)
}
