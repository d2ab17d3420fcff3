// Package billingbridge serves the plan catalog and proxies checkout
// session creation to the payment processor.
package billingbridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/bridge/scaffolding/fopbridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/billing"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
	"github.com/luminahq/lumina/infrastructure/payments/stripecheckout"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
)

// SessionCreator creates hosted checkout sessions.
type SessionCreator interface {
	CreateSession(ctx context.Context, email string, userID string, priceID string) (stripecheckout.Session, error)
}

// Config holds configuration for the billing bridge.
type Config struct {
	Log      *logger.Logger
	Users    *usersrepo.Repository
	Checkout SessionCreator
}

// AddHttpRoutes registers the billing routes. The plan catalog is public;
// checkout creation requires a session.
func AddHttpRoutes(public *web.RouteGroup, authed *web.RouteGroup, cfg Config) {
	b := &bridge{
		log:      cfg.Log,
		users:    cfg.Users,
		checkout: cfg.Checkout,
	}

	public.GET("/billing/plans", b.httpPlans)
	authed.POST("/billing/create-checkout-session", b.httpCreateCheckoutSession)
}

type bridge struct {
	log      *logger.Logger
	users    *usersrepo.Repository
	checkout SessionCreator
}

// CreateCheckoutInput is the request model for checkout creation.
type CreateCheckoutInput struct {
	PriceID string `json:"priceId"`
}

// Validate checks the checkout input.
func (i CreateCheckoutInput) Validate() error {
	if i.PriceID == "" {
		return errors.New("priceId is required")
	}
	return nil
}

func (b *bridge) httpPlans(ctx context.Context, r *http.Request) web.Encoder {
	return fopbridge.NewRecordsResponse(billing.Plans())
}

func (b *bridge) httpCreateCheckoutSession(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.Newf(errs.Unauthenticated, "Unauthorized")
	}

	var input CreateCheckoutInput
	if err := web.Decode(r, &input); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	user, err := b.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usersrepo.ErrUserNotFound) {
			return errs.Newf(errs.Unauthenticated, "Unauthorized")
		}
		return errs.New(errs.Internal, err)
	}

	session, err := b.checkout.CreateSession(ctx, user.Email, user.UserID, input.PriceID)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return web.NewJSONResponse(session)
}
