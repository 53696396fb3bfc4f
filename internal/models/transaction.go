package models

import "time"

// Transaction types
const (
	TransactionDeposit    = "deposit"
	TransactionWithdraw   = "withdraw"
	TransactionTransfer   = "transfer"
	TransactionTransferIn = "transfer_in"
)

// TransactionDB represents an append-only transaction record in the database
type TransactionDB struct {
	TxnID                 int64     `json:"txn_id" db:"txn_id"`                                   // Auto-increment identifier
	CreatedAt             time.Time `json:"created_at" db:"created_at"`                           // Time the record was written
	AccountID             int64     `json:"account_id" db:"account_id"`                           // Account the record belongs to
	BranchID              *int64    `json:"branch_id" db:"branch_id"`                             // Branch of the account at that time
	Type                  string    `json:"type" db:"type"`                                       // One of the Transaction* constants
	Amount                int64     `json:"amount" db:"amount"`                                   // Positive amount
	CounterpartyAccountID *int64    `json:"counterparty_account_id" db:"counterparty_account_id"` // Other side of a transfer
}

// TransactionEvent is the message published for every committed transaction record.
type TransactionEvent struct {
	EventID               string `json:"event_id"`                          // Unique event identifier
	TxnID                 int64  `json:"txn_id"`                            // Transaction record identifier
	Timestamp             int64  `json:"timestamp"`                         // Unix timestamp in seconds
	AccountID             int64  `json:"account_id"`                        // Account the record belongs to
	BranchID              *int64 `json:"branch_id,omitempty"`               // Branch of the account
	Operation             string `json:"operation"`                         // Transaction type
	Amount                int64  `json:"amount"`                            // Amount
	CounterpartyAccountID *int64 `json:"counterparty_account_id,omitempty"` // Other side of a transfer
}
