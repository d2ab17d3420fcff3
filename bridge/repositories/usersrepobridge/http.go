package usersrepobridge

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/bridge/scaffolding/fopbridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
	"github.com/luminahq/lumina/infrastructure/web"
)

func (b *bridge) httpSignup(ctx context.Context, r *http.Request) web.Encoder {
	var input SignupInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	user, err := b.users.Create(ctx, usersrepo.CreateUser{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, usersrepo.ErrUniqueEmail) {
			return errs.Newf(errs.AlreadyExists, "an account with this email already exists")
		}
		return errs.New(errs.Internal, err)
	}

	session, err := b.sessions.Create(ctx, user.UserID, b.sessionTTL)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponseWithStatus(AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, http.StatusCreated)
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input LoginInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	user, err := b.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, usersrepo.ErrUserNotFound) {
			return errs.Newf(errs.Unauthenticated, "invalid email or password")
		}
		return errs.New(errs.Internal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return errs.Newf(errs.Unauthenticated, "invalid email or password")
	}

	session, err := b.sessions.Create(ctx, user.UserID, b.sessionTTL)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}
}

// httpLogout revokes the session and resets the account's cached visual
// state so the next sign-in starts clean.
func (b *bridge) httpLogout(ctx context.Context, r *http.Request) web.Encoder {
	token, err := mid.GetSessionID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := b.sessions.Revoke(ctx, token); err != nil {
		b.log.WarnContext(ctx, "logout: revoke session", "err", err)
	}

	b.preferences.Reset(userID)

	return fopbridge.NewCodeResponse("ok", "signed out")
}

func (b *bridge) httpMe(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	user, err := b.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usersrepo.ErrUserNotFound) {
			return errs.Newf(errs.NotFound, "user not found")
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(user)
}
