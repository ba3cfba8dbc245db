// Package currency
package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/ledger"
	"github.com/dacr-network/dacr-backend/types"
)

type fixedValuation struct {
	value decimal.Decimal
}

func (f *fixedValuation) TotalValuation() decimal.Decimal {
	return f.value
}

func setupTestController(t *testing.T, valuation decimal.Decimal) (*Controller, *ledger.Store) {
	lgr, err := zap.NewDevelopment()
	assert.Nil(t, err)
	store := ledger.NewStore(ledger.Config{Logger: lgr})
	ctrl := NewController(Config{
		InitialSupply:   decimal.Zero,
		MinReserveRatio: decimal.NewFromFloat(0.95),
		PegValue:        decimal.NewFromInt(1),
		Reserves:        &fixedValuation{value: valuation},
		Ledger:          store,
		Logger:          lgr,
	})
	return ctrl, store
}

func TestController_IssueIncrementsSupply(t *testing.T) {
	ctrl, store := setupTestController(t, decimal.NewFromInt(10000))

	tx, err := ctrl.Issue(decimal.NewFromInt(1000), "genesis issuance", "treasury")
	assert.Nil(t, err)
	assert.True(t, ctrl.Supply().Equal(decimal.NewFromInt(1000)))

	// issuance is ledgered atomically as a completed record without a sender
	assert.Equal(t, types.TxIssuance, tx.Type)
	assert.Equal(t, types.TxStatusCompleted, tx.Status)
	assert.Empty(t, tx.Sender)
	assert.Equal(t, "treasury", tx.Recipient)
	assert.NotNil(t, store.Get(tx.ID))
}

func TestController_IssueRejectsNonPositive(t *testing.T) {
	ctrl, _ := setupTestController(t, decimal.NewFromInt(10000))

	_, err := ctrl.Issue(decimal.Zero, "zero", "treasury")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	_, err = ctrl.Issue(decimal.NewFromInt(-1), "negative", "treasury")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	assert.True(t, ctrl.Supply().IsZero())
}

func TestController_IssueGatedByReserveRatio(t *testing.T) {
	// an empty supply is fully backed, the first issuance goes through
	ctrl, _ := setupTestController(t, decimal.NewFromInt(100))
	_, err := ctrl.Issue(decimal.NewFromInt(1000), "bootstrap", "treasury")
	assert.Nil(t, err)

	// ratio is now 100/1000 = 0.1, far below 0.95
	_, err = ctrl.Issue(decimal.NewFromInt(1), "over-issue", "treasury")
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))
	assert.True(t, ctrl.Supply().Equal(decimal.NewFromInt(1000)))
}

func TestController_BurnDecrementsSupply(t *testing.T) {
	ctrl, _ := setupTestController(t, decimal.NewFromInt(10000))
	_, err := ctrl.Issue(decimal.NewFromInt(500), "seed", "treasury")
	assert.Nil(t, err)

	tx, err := ctrl.Burn(decimal.NewFromInt(200), "redemption", "treasury")
	assert.Nil(t, err)
	assert.True(t, ctrl.Supply().Equal(decimal.NewFromInt(300)))
	assert.Equal(t, types.TxBurn, tx.Type)
	assert.Equal(t, "treasury", tx.Sender)
	assert.Equal(t, SystemAccount, tx.Recipient)
}

func TestController_BurnGuards(t *testing.T) {
	ctrl, _ := setupTestController(t, decimal.NewFromInt(10000))
	_, err := ctrl.Issue(decimal.NewFromInt(100), "seed", "treasury")
	assert.Nil(t, err)

	_, err = ctrl.Burn(decimal.NewFromInt(101), "too much", "treasury")
	assert.True(t, errors.Is(err, types.ErrPreconditionFailed))

	_, err = ctrl.Burn(decimal.Zero, "zero", "treasury")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	assert.True(t, ctrl.Supply().Equal(decimal.NewFromInt(100)))
}

func TestController_SetMinReserveRatio(t *testing.T) {
	ctrl, _ := setupTestController(t, decimal.NewFromInt(10000))

	err := ctrl.SetMinReserveRatio(decimal.Zero)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	assert.Nil(t, ctrl.SetMinReserveRatio(decimal.NewFromFloat(0.8)))
}
