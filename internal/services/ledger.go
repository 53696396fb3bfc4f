package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/atm-ledger/internal/logger"
	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// CreateAccountRequest holds the inputs of a new account.
type CreateAccountRequest struct {
	AccountID      int64
	Name           string
	Address        string
	InitialDeposit int64
	PinHash        string // Digest from PinService.SetPin; empty leaves the PIN unset
}

// LedgerService applies balance and branch cash changes.
// Every operation is one unit of work: the balance, branch cash and
// transaction record writes commit together or not at all.
type LedgerService struct {
	uow           UnitOfWork
	accountReader AccountReader
	accountWriter AccountWriter
	branchReader  BranchReader
	branchWriter  BranchWriter
	txnWriter     TransactionWriter
	pins          PinChecker
	rnd           Random
	cache         ReportInvalidator
	kafkaWriter   KafkaWriter
	now           func() time.Time
}

// NewLedgerService creates a new LedgerService. cache and kafkaWriter may be nil.
func NewLedgerService(
	uow UnitOfWork,
	accountReader AccountReader,
	accountWriter AccountWriter,
	branchReader BranchReader,
	branchWriter BranchWriter,
	txnWriter TransactionWriter,
	pins PinChecker,
	rnd Random,
	cache ReportInvalidator,
	kafkaWriter KafkaWriter,
) *LedgerService {
	return &LedgerService{
		uow:           uow,
		accountReader: accountReader,
		accountWriter: accountWriter,
		branchReader:  branchReader,
		branchWriter:  branchWriter,
		txnWriter:     txnWriter,
		pins:          pins,
		rnd:           rnd,
		cache:         cache,
		kafkaWriter:   kafkaWriter,
		now:           time.Now,
	}
}

// CreateAccount opens an account assigned to a random existing branch.
// The initial deposit is part of the opening balance; a deposit record is
// written for history only and branch cash is not moved.
func (s *LedgerService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*models.Receipt, error) {
	var receipt models.Receipt

	err := s.uow.Do(ctx, "create_account", func(ctx context.Context) error {
		existing, err := s.accountReader.GetByID(ctx, req.AccountID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateAccount
		}
		if req.InitialDeposit < 0 {
			return ErrInvalidAmount
		}

		branches, err := s.branchReader.List(ctx)
		if err != nil {
			return err
		}

		account := models.AccountDB{
			AccountID: req.AccountID,
			Name:      req.Name,
			Address:   req.Address,
			Balance:   req.InitialDeposit,
		}
		if len(branches) > 0 {
			branch := branches[s.rnd.Intn(len(branches))]
			branchID := branch.BranchID
			account.BranchID = &branchID
			receipt.Branch = &branch
		}
		if req.PinHash != "" {
			pinHash := req.PinHash
			account.PinHash = &pinHash
		}

		if err := s.accountWriter.Save(ctx, account); err != nil {
			return err
		}
		receipt.Account = account

		if req.InitialDeposit > 0 {
			rec, err := s.appendRecord(ctx, account.AccountID, account.BranchID, models.TransactionDeposit, req.InitialDeposit, nil)
			if err != nil {
				return err
			}
			receipt.Records = append(receipt.Records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("create_account", req.AccountID, holderName(req.Name), req.InitialDeposit, err)
	}

	logger.Log.Infow("account created", "account_id", req.AccountID, "branch_id", receipt.Account.BranchID)
	s.afterCommit(ctx, receipt.Records)
	return &receipt, nil
}

// Deposit credits amount to the account and, when it has a branch, to the branch cash.
// Deposits do not require the PIN.
func (s *LedgerService) Deposit(ctx context.Context, accountID int64, amount int64) (*models.Receipt, error) {
	var (
		receipt models.Receipt
		holder  string
	)

	err := s.uow.Do(ctx, "deposit", func(ctx context.Context) error {
		account, err := s.accountReader.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		holder = holderName(account.Name)

		if amount <= 0 {
			return ErrInvalidAmount
		}

		var branch *models.BranchDB
		if account.HasBranch() {
			branch, err = s.branchReader.GetByID(ctx, *account.BranchID)
			if err != nil {
				return err
			}
			if branch == nil {
				logger.Log.Warnw("deposit to account with missing branch", "account_id", accountID, "branch_id", *account.BranchID)
			}
		}

		account.Balance, err = s.accountWriter.AddBalance(ctx, accountID, amount)
		if err != nil {
			return err
		}
		if branch != nil {
			branch, err = s.branchWriter.AddCash(ctx, branch.BranchID, amount)
			if err != nil {
				return err
			}
		}

		rec, err := s.appendRecord(ctx, accountID, account.BranchID, models.TransactionDeposit, amount, nil)
		if err != nil {
			return err
		}

		receipt = models.Receipt{Account: *account, Branch: branch, Records: []models.TransactionDB{rec}}
		return nil
	})
	if err != nil {
		return nil, s.fail("deposit", accountID, holder, amount, err)
	}

	s.afterCommit(ctx, receipt.Records)
	return &receipt, nil
}

// Withdraw debits amount from the account and from its branch cash after checking the PIN.
func (s *LedgerService) Withdraw(ctx context.Context, accountID int64, amount int64, pin string) (*models.Receipt, error) {
	var (
		receipt models.Receipt
		holder  string
	)

	err := s.uow.Do(ctx, "withdraw", func(ctx context.Context) error {
		account, err := s.accountReader.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		holder = holderName(account.Name)

		if err := s.pins.Check(account, pin); err != nil {
			return err
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if amount > account.Balance {
			return ErrInsufficientBalance
		}

		var branch *models.BranchDB
		if account.HasBranch() {
			branch, err = s.branchReader.GetByID(ctx, *account.BranchID)
			if err != nil {
				return err
			}
			if branch == nil {
				return ErrBranchNotFound
			}
			if amount > branch.Cash {
				return ErrInsufficientBranchCash
			}
		}

		account.Balance, err = s.accountWriter.AddBalance(ctx, accountID, -amount)
		if err != nil {
			return err
		}
		if branch != nil {
			branch, err = s.branchWriter.AddCash(ctx, branch.BranchID, -amount)
			if err != nil {
				return err
			}
			if branch == nil {
				return ErrBranchNotFound
			}
		}

		rec, err := s.appendRecord(ctx, accountID, account.BranchID, models.TransactionWithdraw, amount, nil)
		if err != nil {
			return err
		}

		receipt = models.Receipt{Account: *account, Branch: branch, Records: []models.TransactionDB{rec}}
		return nil
	})
	if err != nil {
		return nil, s.fail("withdraw", accountID, holder, amount, err)
	}

	s.afterCommit(ctx, receipt.Records)
	return &receipt, nil
}

// Transfer moves amount from one account to another after checking the sender PIN.
// Branch cash is not touched. Two records are written, one per side.
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID int64, amount int64, pin string) (*models.Receipt, error) {
	var (
		receipt models.Receipt
		holder  string
	)

	err := s.uow.Do(ctx, "transfer", func(ctx context.Context) error {
		from, to, err := s.lockPair(ctx, fromID, toID)
		if err != nil {
			return err
		}
		if from == nil {
			return ErrAccountNotFound
		}
		holder = holderName(from.Name)
		if to == nil {
			return ErrRecipientNotFound
		}

		if err := s.pins.Check(from, pin); err != nil {
			return err
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if amount > from.Balance {
			return ErrInsufficientBalance
		}

		from.Balance, err = s.accountWriter.AddBalance(ctx, fromID, -amount)
		if err != nil {
			return err
		}
		to.Balance, err = s.accountWriter.AddBalance(ctx, toID, amount)
		if err != nil {
			return err
		}
		if fromID == toID {
			from.Balance = to.Balance
		}

		out, err := s.appendRecord(ctx, fromID, from.BranchID, models.TransactionTransfer, amount, &toID)
		if err != nil {
			return err
		}
		in, err := s.appendRecord(ctx, toID, to.BranchID, models.TransactionTransferIn, amount, &fromID)
		if err != nil {
			return err
		}

		receipt = models.Receipt{Account: *from, Counterparty: to, Records: []models.TransactionDB{out, in}}
		return nil
	})
	if err != nil {
		return nil, s.fail("transfer", fromID, holder, amount, err)
	}

	s.afterCommit(ctx, receipt.Records)
	return &receipt, nil
}

// lockPair reads both transfer accounts in ascending id order so concurrent
// transfers lock rows in the same order.
func (s *LedgerService) lockPair(ctx context.Context, fromID, toID int64) (from, to *models.AccountDB, err error) {
	if fromID == toID {
		from, err = s.accountReader.GetByID(ctx, fromID)
		if err != nil || from == nil {
			return from, from, err
		}
		cp := *from
		return from, &cp, nil
	}

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	a, err := s.accountReader.GetByID(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.accountReader.GetByID(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if first == fromID {
		return a, b, nil
	}
	return b, a, nil
}

// appendRecord writes one transaction record and returns it with its id.
func (s *LedgerService) appendRecord(
	ctx context.Context,
	accountID int64,
	branchID *int64,
	txnType string,
	amount int64,
	counterparty *int64,
) (models.TransactionDB, error) {
	rec := models.TransactionDB{
		CreatedAt:             s.now(),
		AccountID:             accountID,
		BranchID:              branchID,
		Type:                  txnType,
		Amount:                amount,
		CounterpartyAccountID: counterparty,
	}

	id, err := s.txnWriter.Save(ctx, rec)
	if err != nil {
		return models.TransactionDB{}, err
	}
	rec.TxnID = id
	return rec, nil
}

// fail wraps err into a LedgerError, classifying unknown errors as storage failures.
func (s *LedgerService) fail(op string, accountID int64, holder string, amount int64, err error) error {
	err = storageFailure(err)

	logger.Log.Errorw("ledger operation rejected",
		"op", op,
		"account_id", accountID,
		"amount", amount,
		"error", err,
	)

	return &LedgerError{
		Op:        op,
		AccountID: accountID,
		Holder:    holder,
		Amount:    amount,
		Err:       err,
	}
}

// afterCommit invalidates cached reports and publishes the new records.
func (s *LedgerService) afterCommit(ctx context.Context, records []models.TransactionDB) {
	if len(records) == 0 {
		return
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Log.Errorw("failed to invalidate report cache", "error", err)
		}
	}

	s.publishTransactions(ctx, records)
}

// publishTransactions publishes committed records to Kafka.
func (s *LedgerService) publishTransactions(ctx context.Context, records []models.TransactionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "records", len(records))
		return
	}

	msgs := make([]kafka.Message, 0, len(records))
	for _, rec := range records {
		event := models.TransactionEvent{
			EventID:               uuid.NewString(),
			TxnID:                 rec.TxnID,
			Timestamp:             rec.CreatedAt.Unix(),
			AccountID:             rec.AccountID,
			BranchID:              rec.BranchID,
			Operation:             rec.Type,
			Amount:                rec.Amount,
			CounterpartyAccountID: rec.CounterpartyAccountID,
		}

		data, err := json.Marshal(event)
		if err != nil {
			logger.Log.Errorw("Failed to marshal transaction for Kafka", "txn_id", rec.TxnID, "error", err)
			continue
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatInt(rec.AccountID, 10)),
			Value: data,
		})
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		logger.Log.Errorw("Failed to publish transactions to Kafka", "records", len(msgs), "error", err)
	} else {
		logger.Log.Infow("Transactions published to Kafka", "records", len(msgs))
	}
}
