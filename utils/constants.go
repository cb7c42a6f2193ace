package utils

const (
	// Split types
	SplitTypeEqual   = "EQUAL"
	SplitTypeExact   = "EXACT"
	SplitTypePercent = "PERCENT"

	// Settlement statuses
	SettlementPending      = "PENDING"
	SettlementKeyGenerated = "KEY_GENERATED"
	SettlementSettled      = "SETTLED"

	// Key generation
	SettlementKeyCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	SettlementKeyLength  = 8
	MemberKeyBytes       = 3 // hex-encoded to 6 characters

	// Error messages
	ErrInvalidRequest     = "Invalid request"
	ErrInvalidKey         = "Invalid settlement key. Ask the payee for their current key."
	ErrAlreadySettled     = "Settlement already completed"
	ErrFailedToStore      = "Failed to store data"
	ErrFailedToRetrieve   = "Failed to retrieve data"
	ErrInvalidCredentials = "Invalid credentials"

	// Balances below this magnitude are treated as settled.
	BalanceEpsilon = 0.01

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)
