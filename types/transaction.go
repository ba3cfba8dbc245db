package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxIssuance   TransactionType = "issuance"
	TxTransfer   TransactionType = "transfer"
	TxRedemption TransactionType = "redemption"
	TxBurn       TransactionType = "burn"
	TxReward     TransactionType = "reward"
)

type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusFailed    TransactionStatus = "failed"
)

// Transaction is a ledger entry. Immutable once it leaves the pending index;
// status moves pending->completed or pending->failed exactly once.
type Transaction struct {
	ID        string            `json:"id"`
	Type      TransactionType   `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
	Sender    string            `json:"sender,omitempty"` // empty for issuance
	Recipient string            `json:"recipient"`
	Time      time.Time         `json:"time"`
	Status    TransactionStatus `json:"status"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
