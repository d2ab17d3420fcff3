package profilesrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/bridge/scaffolding/fopbridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/themes"
	"github.com/luminahq/lumina/infrastructure/web"
)

// SetThemeInput is the request model for a theme change.
type SetThemeInput struct {
	Theme string `json:"theme"`
}

// Validate checks the theme input. Identifiers outside the preset set are
// allowed; they are stored without being applied.
func (i SetThemeInput) Validate() error {
	if i.Theme == "" {
		return errors.New("theme is required")
	}
	return nil
}

// SetAvatarInput is the request model for an avatar change.
type SetAvatarInput struct {
	Seed string `json:"seed"`
}

// Validate checks the avatar input.
func (i SetAvatarInput) Validate() error {
	if i.Seed == "" {
		return errors.New("seed is required")
	}
	return nil
}

func (b *bridge) httpGet(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return fopbridge.NewRecordResponse(b.preferences.Load(ctx, userID))
}

func (b *bridge) httpSetTheme(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input SetThemeInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	result, err := b.preferences.SetTheme(ctx, userID, input.Theme)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(result)
}

func (b *bridge) httpSetAvatar(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input SetAvatarInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	prefs, err := b.preferences.SetAvatar(ctx, userID, input.Seed)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(prefs)
}

func (b *bridge) httpThemes(ctx context.Context, r *http.Request) web.Encoder {
	return fopbridge.NewRecordsResponse(themes.List())
}

func (b *bridge) httpAvatars(ctx context.Context, r *http.Request) web.Encoder {
	return fopbridge.NewRecordsResponse(themes.Avatars())
}
