package types

import "time"

// Package is a purchasable subscription plan.
type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	Period      string   `json:"period,omitempty"`
	Features    []string `json:"features,omitempty"`
	Popular     bool     `json:"popular,omitempty"`
}

// Subscription is the signed-in user's active plan.
type Subscription struct {
	ID          string    `json:"id"`
	PackageID   string    `json:"packageId"`
	PackageName string    `json:"packageName,omitempty"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"startDate,omitempty"`
	EndDate     time.Time `json:"endDate,omitempty"`
	AutoRenew   bool      `json:"autoRenew"`
}

// PaymentDetails accompanies a subscribe call. Either a stored method id or
// raw card data is given.
type PaymentDetails struct {
	PaymentMethodID string `json:"paymentMethodId,omitempty"`
	CardHolder      string `json:"cardHolder,omitempty"`
	CardNumber      string `json:"cardNumber,omitempty"`
	ExpiryMonth     int    `json:"expiryMonth,omitempty"`
	ExpiryYear      int    `json:"expiryYear,omitempty"`
	CVC             string `json:"cvc,omitempty"`
}

// PaymentMethod is a stored card.
type PaymentMethod struct {
	ID          string `json:"id"`
	Brand       string `json:"brand,omitempty"`
	Last4       string `json:"last4"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	CardHolder  string `json:"cardHolder,omitempty"`
	Default     bool   `json:"isDefault,omitempty"`
}

// Invoice is one line of billing history.
type Invoice struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
