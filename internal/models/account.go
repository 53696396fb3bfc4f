package models

// AccountDB represents a customer account row in the database
type AccountDB struct {
	AccountID int64   `json:"account_id" db:"account_id"` // Caller supplied account number
	Name      string  `json:"name" db:"name"`             // Holder name
	Address   string  `json:"address" db:"address"`       // Holder address
	Balance   int64   `json:"balance" db:"balance"`       // Current balance
	BranchID  *int64  `json:"branch_id" db:"branch_id"`   // Assigned branch, nil when unassigned
	PinHash   *string `json:"-" db:"pin_hash"`            // PIN digest, nil when the PIN was never set
}

// HasBranch reports whether the account is assigned to a branch.
func (a *AccountDB) HasBranch() bool {
	return a.BranchID != nil
}

// AccountView is an account together with its branch snapshot.
type AccountView struct {
	Account AccountDB `json:"account"`
	// Branch is nil when the account has no branch or the branch row is missing.
	Branch *BranchDB `json:"branch,omitempty"`
}
