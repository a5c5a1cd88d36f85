package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Role is the closed set of customer roles. It is kept as a validated
// string set because the role travels through JSON and the database.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

type Customer struct {
	ID            int64           `json:"id"`
	FullName      string          `json:"full_name"`
	Username      string          `json:"username"`
	Password      string          `json:"password"` // stored and returned verbatim, a known deficiency of the source system
	Age           int             `json:"age"`
	Address       *string         `json:"address"`
	Gender        *string         `json:"gender"`
	MaritalStatus *string         `json:"marital_status"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	Role          Role            `json:"role"`
}

func (Customer) TableName() string { return "customers" }

type CustomerCreateRequest struct {
	FullName      *string `json:"full_name"`
	Username      *string `json:"username"`
	Password      *string `json:"password"`
	Age           *int    `json:"age"`
	Address       *string `json:"address"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
	Role          *Role   `json:"role"`
}

var ErrInvalidUsername = NewValidationError("Invalid username")

// Validate reports every missing required field at once, not just the
// first one.
func (r CustomerCreateRequest) Validate() error {
	var missing []string
	require := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	require("full_name", r.FullName != nil && *r.FullName != "")
	require("username", r.Username != nil && *r.Username != "")
	require("password", r.Password != nil && *r.Password != "")
	require("age", r.Age != nil)
	require("address", r.Address != nil && *r.Address != "")
	require("gender", r.Gender != nil && *r.Gender != "")
	require("marital_status", r.MaritalStatus != nil && *r.MaritalStatus != "")

	if len(missing) > 0 {
		return NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	if strings.ContainsAny(*r.Username, "<>") {
		return ErrInvalidUsername
	}
	if r.Role != nil && !r.Role.Valid() {
		return NewValidationError("Invalid role")
	}
	return nil
}

// CustomerUpdateRequest carries patch semantics: only non-nil fields are
// applied. Role is deliberately not updatable through this path.
type CustomerUpdateRequest struct {
	FullName      *string          `json:"full_name"`
	Password      *string          `json:"password"`
	Age           *int             `json:"age"`
	Address       *string          `json:"address"`
	Gender        *string          `json:"gender"`
	MaritalStatus *string          `json:"marital_status"`
	WalletBalance *decimal.Decimal `json:"wallet_balance"`
}

// Fields maps the request onto the allow-listed set of updatable
// columns. Unknown JSON keys never reach the database.
func (r CustomerUpdateRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.FullName != nil {
		fields["full_name"] = *r.FullName
	}
	if r.Password != nil {
		fields["password"] = *r.Password
	}
	if r.Age != nil {
		fields["age"] = *r.Age
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.Gender != nil {
		fields["gender"] = *r.Gender
	}
	if r.MaritalStatus != nil {
		fields["marital_status"] = *r.MaritalStatus
	}
	if r.WalletBalance != nil {
		fields["wallet_balance"] = *r.WalletBalance
	}
	return fields
}
