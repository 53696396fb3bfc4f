package models

// BranchDB represents a branch row in the database
type BranchDB struct {
	BranchID int64  `json:"branch_id" db:"branch_id"` // Unique branch number in [1000, 9999]
	Location string `json:"location" db:"location"`   // Location label
	Cash     int64  `json:"cash" db:"cash"`           // Cash on hand, never negative
}
