package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/models"
)

// PinLength is the number of digits in a PIN.
const PinLength = 4

// HashPin returns the hex SHA-256 digest of a raw PIN.
func HashPin(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func isValidPin(raw string) bool {
	if len(raw) != PinLength {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// PinService sets and verifies account PINs.
type PinService struct {
	reader AccountReader
}

// NewPinService creates a new PinService instance.
func NewPinService(reader AccountReader) *PinService {
	return &PinService{reader: reader}
}

// SetPin validates a new PIN and its confirmation and returns the digest to store.
func (s *PinService) SetPin(raw, confirm string) (string, error) {
	if !isValidPin(raw) {
		return "", ErrInvalidPin
	}
	if raw != confirm {
		return "", ErrPinMismatch
	}
	return HashPin(raw), nil
}

// Check verifies raw against the digest stored on account.
func (s *PinService) Check(account *models.AccountDB, raw string) error {
	if account.PinHash == nil {
		logger.Log.Warnw("pin not set", "account_id", account.AccountID)
		return ErrPinNotSet
	}

	if subtle.ConstantTimeCompare([]byte(HashPin(raw)), []byte(*account.PinHash)) != 1 {
		logger.Log.Warnw("incorrect pin", "account_id", account.AccountID, "holder", strings.ToUpper(account.Name))
		return ErrIncorrectPin
	}
	return nil
}

// VerifyPin reports whether raw is the PIN of the account. It fails closed.
func (s *PinService) VerifyPin(ctx context.Context, accountID int64, raw string) bool {
	account, err := s.reader.GetByID(ctx, accountID)
	if err != nil {
		logger.Log.Errorw("failed to get account for pin check", "account_id", accountID, "error", err)
		return false
	}
	if account == nil {
		logger.Log.Warnw("pin check for unknown account", "account_id", accountID)
		return false
	}
	return s.Check(account, raw) == nil
}
