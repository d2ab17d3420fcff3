// Package stripecheckout creates hosted Stripe Checkout sessions.
package stripecheckout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/luminahq/lumina/sdk/environment"
	"github.com/luminahq/lumina/sdk/logger"
)

// Options represents the exportable checkout configuration
type Options struct {
	SecretKey string `env:"STRIPE_SECRET_KEY" required:"true"`
	SiteURL   string `env:"SITE_URL" default:"http://localhost:3000"`
}

// Session is the subset of a checkout session callers need: the id for
// client-side confirmation and the hosted URL to redirect to.
type Session struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// Client creates checkout sessions against the Stripe API.
type Client struct {
	log     *logger.Logger
	api     *client.API
	siteURL string
}

// NewFromEnv creates a checkout client using environment variables.
func NewFromEnv(prefix string, log *logger.Logger) (*Client, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing stripe config: %w", err)
	}
	return New(log, cfg), nil
}

// New creates a checkout client with the given config.
func New(log *logger.Logger, cfg Options) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Client{
		log:     log,
		api:     api,
		siteURL: cfg.SiteURL,
	}
}

// CreateSession creates a subscription-mode checkout session for the given
// price, tagged with the account id so the processor can attribute it.
func (c *Client) CreateSession(ctx context.Context, email string, userID string, priceID string) (Session, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
		CustomerEmail: stripe.String(email),
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.siteURL + "/dashboard?success=true"),
		CancelURL:  stripe.String(c.siteURL + "/dashboard/subscription?canceled=true"),
	}
	params.AddMetadata("userId", userID)

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return Session{}, fmt.Errorf("create checkout session: %w", err)
	}

	c.log.InfoContext(ctx, "checkout session created", "session_id", session.ID, "user_id", userID)

	return Session{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
