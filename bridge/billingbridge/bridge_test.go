package billingbridge_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luminahq/lumina/bridge/billingbridge"
	"github.com/luminahq/lumina/bridge/scaffolding/mid"
	"github.com/luminahq/lumina/core/repositories/usersrepo"
	"github.com/luminahq/lumina/infrastructure/payments/stripecheckout"
	"github.com/luminahq/lumina/infrastructure/web"
	"github.com/luminahq/lumina/sdk/logger"
	"github.com/luminahq/lumina/sdk/telemetry"
)

type stubUserStorer struct {
	user usersrepo.User
}

func (s *stubUserStorer) Create(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	return usersrepo.User{}, errors.New("not implemented")
}

func (s *stubUserStorer) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	if userID != s.user.UserID {
		return usersrepo.User{}, usersrepo.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUserStorer) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	return usersrepo.User{}, usersrepo.ErrUserNotFound
}

func (s *stubUserStorer) Update(ctx context.Context, userID string, input usersrepo.UpdateUser) error {
	return nil
}

func (s *stubUserStorer) Delete(ctx context.Context, userID string) error {
	return nil
}

type stubCheckout struct {
	session stripecheckout.Session
	err     error

	gotEmail   string
	gotUserID  string
	gotPriceID string
}

func (s *stubCheckout) CreateSession(ctx context.Context, email string, userID string, priceID string) (stripecheckout.Session, error) {
	s.gotEmail = email
	s.gotUserID = userID
	s.gotPriceID = priceID
	if s.err != nil {
		return stripecheckout.Session{}, s.err
	}
	return s.session, nil
}

type stubAuthenticator struct {
	userID string
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	if token != "valid-token" {
		return "", errors.New("unknown session")
	}
	return s.userID, nil
}

func newTestServer(t *testing.T, checkout *stubCheckout, userID string) *httptest.Server {
	t.Helper()

	log := logger.NewDefault()
	app := web.NewApp(log, telemetry.NewTelemetry(), mid.Errors(log))

	public := app.Group("/api/v1")
	authed := public.Group("", mid.Bearer(&stubAuthenticator{userID: userID}))

	users := usersrepo.NewRepository(log, &stubUserStorer{
		user: usersrepo.User{UserID: userID, Email: "alex@example.com"},
	})

	billingbridge.AddHttpRoutes(public, authed, billingbridge.Config{
		Log:      log,
		Users:    users,
		Checkout: checkout,
	})

	server := httptest.NewServer(app)
	t.Cleanup(server.Close)
	return server
}

func TestCreateCheckoutSession(t *testing.T) {
	checkout := &stubCheckout{
		session: stripecheckout.Session{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"},
	}
	server := newTestServer(t, checkout, "user-1")

	body := bytes.NewBufferString(`{"priceId":"price_pro_monthly"}`)
	r, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/billing/create-checkout-session", body)
	r.Header.Set("Authorization", "Bearer valid-token")
	r.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("issuing request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var got struct {
		SessionID string `json:"sessionId"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.SessionID != "cs_test_123" {
		t.Errorf("got session id %q, want cs_test_123", got.SessionID)
	}
	if got.URL == "" {
		t.Error("response should carry the hosted checkout url")
	}

	if checkout.gotEmail != "alex@example.com" {
		t.Errorf("checkout should receive the account email, got %q", checkout.gotEmail)
	}
	if checkout.gotUserID != "user-1" {
		t.Errorf("checkout should receive the account id, got %q", checkout.gotUserID)
	}
	if checkout.gotPriceID != "price_pro_monthly" {
		t.Errorf("checkout should receive the price id, got %q", checkout.gotPriceID)
	}
}

func TestCreateCheckoutSessionUnauthorized(t *testing.T) {
	checkout := &stubCheckout{}
	server := newTestServer(t, checkout, "user-1")

	body := bytes.NewBufferString(`{"priceId":"price_pro_monthly"}`)
	r, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/billing/create-checkout-session", body)
	r.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("issuing request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got["error"] != "Unauthorized" {
		t.Errorf("got error %q, want Unauthorized", got["error"])
	}

	if checkout.gotPriceID != "" {
		t.Error("checkout should not be reached without a session")
	}
}

func TestCreateCheckoutSessionMissingPrice(t *testing.T) {
	server := newTestServer(t, &stubCheckout{}, "user-1")

	body := bytes.NewBufferString(`{}`)
	r, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/billing/create-checkout-session", body)
	r.Header.Set("Authorization", "Bearer valid-token")
	r.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("issuing request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestCheckoutFailure(t *testing.T) {
	checkout := &stubCheckout{err: errors.New("stripe unavailable")}
	server := newTestServer(t, checkout, "user-1")

	body := bytes.NewBufferString(`{"priceId":"price_pro_monthly"}`)
	r, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/billing/create-checkout-session", body)
	r.Header.Set("Authorization", "Bearer valid-token")
	r.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("issuing request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", resp.StatusCode)
	}
}

func TestPlansCatalog(t *testing.T) {
	server := newTestServer(t, &stubCheckout{}, "user-1")

	resp, err := http.Get(server.URL + "/api/v1/billing/plans")
	if err != nil {
		t.Fatalf("issuing request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var got struct {
		Records []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got.Records) != 2 {
		t.Fatalf("got %d plans, want 2", len(got.Records))
	}
	if got.Records[0].ID != "free" || got.Records[1].ID != "pro" {
		t.Errorf("got plan ids %q and %q, want free and pro", got.Records[0].ID, got.Records[1].ID)
	}
}
