package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type SupplyInfo struct {
	TotalSupply decimal.Decimal `json:"totalSupply"`
	Time        time.Time       `json:"time"`
}

type ServerStatus struct {
	Status        string    `json:"status"`
	AppVersion    string    `json:"appVersion"`
	ServerVersion string    `json:"serverVersion"`
	Time          time.Time `json:"time"`
}
