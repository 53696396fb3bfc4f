package models

// Receipt is the outcome of a committed ledger operation.
type Receipt struct {
	Account      AccountDB       `json:"account"`                // Account after the operation
	Branch       *BranchDB       `json:"branch,omitempty"`       // Branch after the operation, if any
	Counterparty *AccountDB      `json:"counterparty,omitempty"` // Recipient of a transfer
	Records      []TransactionDB `json:"records"`                // Records appended by the operation
}
