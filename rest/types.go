// Package rest holds the wire models of the HTTP boundary.
package rest

// CreateDealRequest is the body of POST /v1/deals.
type CreateDealRequest struct {
	Buyer  string `json:"buyer" validate:"required"`
	Seller string `json:"seller" validate:"required,nefield=Buyer"`
	Price  int64  `json:"price" validate:"required,gt=0"`
}

// FundDealRequest is the body of POST /v1/deals/{id}/fund.
type FundDealRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Deal is the external representation of a deal.
type Deal struct {
	ID      string `json:"id"`
	Buyer   string `json:"buyer"`
	Seller  string `json:"seller"`
	Price   int64  `json:"price"`
	Balance int64  `json:"balance"`
	Status  string `json:"status"`
}

// DealCreated is the response of POST /v1/deals.
type DealCreated struct {
	ID string `json:"id"`
}

// DealStatus is the response of GET /v1/deals/{id}/status.
type DealStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// DealList is the response of GET /v1/deals.
type DealList struct {
	Deals []string `json:"deals"`
}

// LedgerEntry is one recorded value movement of a deal.
type LedgerEntry struct {
	Direction string  `json:"direction"`
	Amount    int64   `json:"amount"`
	Recipient *string `json:"recipient,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// LedgerEntryList is the response of GET /v1/deals/{id}/ledger.
type LedgerEntryList struct {
	Entries []LedgerEntry `json:"entries"`
}

// RegisterResponse is the response of POST /v1/auth/register.
type RegisterResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// LoginResponse is the response of POST /v1/auth/login.
type LoginResponse struct {
	Token   string `json:"token"`
	Address string `json:"address"`
}

// Error is the error envelope returned on any failure.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
