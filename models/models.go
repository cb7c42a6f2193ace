package models

import "time"

// User represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Group represents a set of users sharing expenses
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroupMember is one user's membership in a group, including the settlement
// key they hand out of band to whoever is paying them.
type GroupMember struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	MobileNumber  string `json:"mobileNumber"`
	SettlementKey string `json:"settlementKey"`
}

// Expense represents a shared expense. Immutable once created.
type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	PayerID     int64     `json:"payerId"`
	GroupID     *int64    `json:"groupId,omitempty"` // nil = personal expense
	SplitType   string    `json:"splitType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Split is one participant's owed share of an expense
type Split struct {
	UserID int64   `json:"userId"`
	Amount float64 `json:"amount"`
}

// ExpenseEntry is one row of a user's expense feed: the expense joined with
// the user's own share and whether they paid or owe.
type ExpenseEntry struct {
	Expense
	UserShare float64 `json:"userShare"`
	UserRole  string  `json:"userRole"` // PAID or OWED
}

// Settlement represents a recorded payment intended to clear debt between
// two users.
type Settlement struct {
	ID            int64     `json:"id"`
	PayerID       int64     `json:"payerId"`
	PayeeID       int64     `json:"payeeId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	SettlementKey string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BalanceSummary is the derived net position of one user. Never persisted,
// recomputed on every read.
type BalanceSummary struct {
	TotalBalance float64 `json:"totalBalance"`
	YouOwe       float64 `json:"youOwe"`
	YouAreOwed   float64 `json:"youAreOwed"`
}

// FriendBalance is the net balance against one counterparty.
// Positive = they owe you, negative = you owe them.
type FriendBalance struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	MobileNumber string  `json:"mobileNumber"`
	Balance      float64 `json:"balance"`
}

// TransferParty identifies one end of a simplified transfer
type TransferParty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transfer is one edge in the simplified debt graph
type Transfer struct {
	From   TransferParty `json:"from"`
	To     TransferParty `json:"to"`
	Amount float64       `json:"amount"`
}
