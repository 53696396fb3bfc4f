package handlers

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/atm-ledger/internal/models"
	"github.com/sbilibin2017/atm-ledger/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestWithdrawHandler(t *testing.T) {
	digest := services.HashPin("1234")
	withPin := &models.AccountView{Account: models.AccountDB{AccountID: 1, Name: "alice", Balance: 500, PinHash: &digest}}

	tests := []struct {
		name         string
		input        string
		setupMocks   func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier)
		expectedText []string
		missingText  []string
	}{
		{
			name:  "successful withdrawal",
			input: "1\n200\n1234\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(withPin, nil)
				pins.EXPECT().VerifyPin(gomock.Any(), int64(1), "1234").Return(true)
				svc.EXPECT().Withdraw(gomock.Any(), int64(1), int64(200), "1234").Return(&models.Receipt{
					Account: models.AccountDB{AccountID: 1, Name: "alice", Balance: 300},
					Branch:  &models.BranchDB{BranchID: 1111, Location: "Avadi", Cash: 59800},
				}, nil)
			},
			expectedText: []string{
				"ALICE: Withdrawal of 200 successful. New balance in your account is 300.",
				"Branch: Avadi (Branch cash: 59800)",
			},
		},
		{
			name:  "account not found before pin",
			input: "9\n200\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(9)).Return(nil, services.ErrAccountNotFound)
			},
			expectedText: []string{"Account not found."},
			missingText:  []string{"Enter PIN: "},
		},
		{
			name:  "pin not set",
			input: "2\n200\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(2)).
					Return(&models.AccountView{Account: models.AccountDB{AccountID: 2, Name: "bob"}}, nil)
			},
			expectedText: []string{"PIN not set for this account."},
			missingText:  []string{"Enter PIN: "},
		},
		{
			name:  "incorrect pin is rejected before the ledger",
			input: "1\n200\n0000\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(withPin, nil)
				pins.EXPECT().VerifyPin(gomock.Any(), int64(1), "0000").Return(false)
			},
			expectedText: []string{"ALICE: Incorrect PIN."},
		},
		{
			name:  "incorrect pin for blank holder name",
			input: "3\n200\n0000\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(3)).
					Return(&models.AccountView{Account: models.AccountDB{AccountID: 3, PinHash: &digest}}, nil)
				pins.EXPECT().VerifyPin(gomock.Any(), int64(3), "0000").Return(false)
			},
			expectedText: []string{"USER: Incorrect PIN."},
		},
		{
			name:  "pin changed between check and withdrawal",
			input: "1\n200\n1234\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(withPin, nil)
				pins.EXPECT().VerifyPin(gomock.Any(), int64(1), "1234").Return(true)
				svc.EXPECT().Withdraw(gomock.Any(), int64(1), int64(200), "1234").
					Return(nil, &services.LedgerError{Op: "withdraw", AccountID: 1, Holder: "ALICE", Err: services.ErrIncorrectPin})
			},
			expectedText: []string{"ALICE: Incorrect PIN."},
		},
		{
			name:  "insufficient branch cash",
			input: "1\n200\n1234\n",
			setupMocks: func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {
				accounts.EXPECT().GetAccount(gomock.Any(), int64(1)).Return(withPin, nil)
				pins.EXPECT().VerifyPin(gomock.Any(), int64(1), "1234").Return(true)
				svc.EXPECT().Withdraw(gomock.Any(), int64(1), int64(200), "1234").
					Return(nil, &services.LedgerError{Op: "withdraw", AccountID: 1, Holder: "ALICE", Err: services.ErrInsufficientBranchCash})
			},
			expectedText: []string{"ALICE: Branch has insufficient cash."},
		},
		{
			name:         "negative amount",
			input:        "1\n-5\n",
			setupMocks:   func(svc *MockWithdrawer, accounts *MockAccountGetter, pins *MockPinVerifier) {},
			expectedText: []string{"Amount must be positive."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockWithdrawer(ctrl)
			accounts := NewMockAccountGetter(ctrl)
			pins := NewMockPinVerifier(ctrl)
			tt.setupMocks(svc, accounts, pins)

			c, out := newTestConsole(tt.input)
			err := NewWithdrawHandler(svc, accounts, pins)(context.Background(), c)

			assert.NoError(t, err)
			for _, text := range tt.expectedText {
				assert.Contains(t, out.String(), text)
			}
			for _, text := range tt.missingText {
				assert.NotContains(t, out.String(), text)
			}
		})
	}
}
