package models

// RegisterRequest request model
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
}

// LoginRequest request model; either email or mobileNumber identifies the user
type LoginRequest struct {
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password" binding:"required"`
}

// AuthResponse response model
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AddExpenseRequest request model. UserIDs may be empty: participants then
// default to the group's membership, or to the payer alone.
type AddExpenseRequest struct {
	Description string        `json:"description" binding:"required"`
	Amount      float64       `json:"amount" binding:"required,gt=0"`
	SplitType   string        `json:"splitType" binding:"required,oneof=EQUAL EXACT PERCENT"`
	UserIDs     []int64       `json:"userIds"`
	GroupID     *int64        `json:"groupId"`
	Options     *SplitOptions `json:"options"`
}

// SplitOptions carries the per-variant split parameters
type SplitOptions struct {
	Amounts     []float64 `json:"amounts,omitempty"`     // EXACT: one per participant
	Percentages []float64 `json:"percentages,omitempty"` // PERCENT: one per participant, sum 100
}

// AddExpenseResponse response model
type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
	Splits  []Split  `json:"splits"`
}

// InitiateSettlementRequest request model
type InitiateSettlementRequest struct {
	PayeeID int64   `json:"payeeId" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

// InitiateSettlementResponse response model
type InitiateSettlementResponse struct {
	SettlementID int64  `json:"settlementId"`
	Key          string `json:"key"`
	Message      string `json:"message"`
}

// ConfirmSettlementRequest request model
type ConfirmSettlementRequest struct {
	SettlementID int64  `json:"settlementId" binding:"required"`
	Key          string `json:"key" binding:"required"`
}

// CreateGroupRequest request model
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddMemberRequest request model. Either UserID or MobileNumber is required;
// an unknown mobile number becomes a pending invitation.
type AddMemberRequest struct {
	GroupID      int64  `json:"groupId" binding:"required"`
	UserID       int64  `json:"userId"`
	MobileNumber string `json:"mobileNumber"`
}
