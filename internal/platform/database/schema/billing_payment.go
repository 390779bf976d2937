package schema

// BillingPaymentTable represents the 'billing.payment' table
type BillingPaymentTable struct {
	Table       string
	ID          string
	StudentID   string
	Plan        string
	AmountCents string
	Currency    string
	Status      string
	Provider    string
	ProviderRef string
	CreatedAt   string
}

// BillingPayment is the schema definition for billing.payment
var BillingPayment = BillingPaymentTable{
	Table:       "billing.payment",
	ID:          "id",
	StudentID:   "studentid",
	Plan:        "plan",
	AmountCents: "amountcents",
	Currency:    "currency",
	Status:      "status",
	Provider:    "provider",
	ProviderRef: "providerref",
	CreatedAt:   "createdat",
}

func (t BillingPaymentTable) Columns() []string {
	return []string{
		t.ID, t.StudentID, t.Plan, t.AmountCents, t.Currency, t.Status,
		t.Provider, t.ProviderRef, t.CreatedAt,
	}
}
