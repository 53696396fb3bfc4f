package models

// AccountActivity is an account ranked by its number of transaction records.
type AccountActivity struct {
	AccountID int64  `json:"account_id" db:"account_id"`
	Name      string `json:"name" db:"name"` // "Unknown" when the account row is missing
	Count     int64  `json:"count" db:"cnt"`
}

// SummaryRow aggregates transaction records for one (branch, type) pair.
type SummaryRow struct {
	BranchID *int64 `json:"branch_id" db:"branch_id"`
	Type     string `json:"type" db:"type"`
	Count    int64  `json:"count" db:"cnt"`
	Total    int64  `json:"total" db:"total"`
}
