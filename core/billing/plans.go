// Package billing holds the static subscription plan catalog.
//
// Plan state is display data only. There is no webhook reconciliation, so
// nothing here tracks whether an account actually holds a subscription.
package billing

// Feature is a single plan feature line.
type Feature struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// Price is a billing-cycle price point.
type Price struct {
	Amount  string `json:"amount"`
	Period  string `json:"period"`
	Savings string `json:"savings,omitempty"`
}

// Plan is a subscription tier.
type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Monthly     Price     `json:"monthly"`
	Yearly      *Price    `json:"yearly,omitempty"`
	Features    []Feature `json:"features"`
	Highlighted bool      `json:"highlighted"`
}

// Plans returns the catalog served to the subscription page.
func Plans() []Plan {
	return []Plan{
		{
			ID:          "free",
			Name:        "Free",
			Description: "Perfect for getting started",
			Monthly:     Price{Amount: "CHF 0", Period: "forever"},
			Features: []Feature{
				{Text: "10 tasks per month", Included: true},
				{Text: "5 notes per month", Included: true},
				{Text: "3 avatar options", Included: true},
				{Text: "2 theme options", Included: true},
				{Text: "Basic support", Included: true},
				{Text: "Unlimited tasks", Included: false},
				{Text: "Unlimited notes", Included: false},
				{Text: "All avatars", Included: false},
				{Text: "All themes", Included: false},
				{Text: "Priority support", Included: false},
				{Text: "Advanced analytics", Included: false},
				{Text: "Export data", Included: false},
			},
		},
		{
			ID:          "pro",
			Name:        "Pro",
			Description: "Unlock your full potential",
			Monthly:     Price{Amount: "CHF 17", Period: "per month"},
			Yearly:      &Price{Amount: "CHF 170", Period: "per year", Savings: "Save CHF 34/year"},
			Features: []Feature{
				{Text: "Unlimited tasks", Included: true},
				{Text: "Unlimited notes", Included: true},
				{Text: "All 9 avatar options", Included: true},
				{Text: "All 6 premium themes", Included: true},
				{Text: "Priority support", Included: true},
				{Text: "Advanced analytics", Included: true},
				{Text: "Export to PDF/CSV", Included: true},
				{Text: "Collaboration features", Included: true},
				{Text: "Custom branding", Included: true},
				{Text: "API access", Included: true},
				{Text: "Early access to features", Included: true},
				{Text: "No ads", Included: true},
			},
			Highlighted: true,
		},
	}
}
