package bootstrap

// migrations create the ledger schema. Every statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS branches (
		branch_id BIGINT PRIMARY KEY CHECK (branch_id BETWEEN 1000 AND 9999),
		location TEXT NOT NULL,
		cash BIGINT NOT NULL DEFAULT 0 CHECK (cash >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		account_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0)
	)`,
	// Stores created before branch assignment and PINs existed get the columns added
	`ALTER TABLE accounts ADD COLUMN IF NOT EXISTS branch_id BIGINT REFERENCES branches(branch_id)`,
	`ALTER TABLE accounts ADD COLUMN IF NOT EXISTS pin_hash TEXT`,
	`CREATE TABLE IF NOT EXISTS transactions (
		txn_id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		account_id BIGINT NOT NULL REFERENCES accounts(account_id),
		branch_id BIGINT REFERENCES branches(branch_id),
		type TEXT NOT NULL CHECK (type IN ('deposit', 'withdraw', 'transfer', 'transfer_in')),
		amount BIGINT NOT NULL CHECK (amount > 0),
		counterparty_account_id BIGINT
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_account_id_idx ON transactions (account_id)`,
	`CREATE INDEX IF NOT EXISTS transactions_branch_id_idx ON transactions (branch_id)`,
}
