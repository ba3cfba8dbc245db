package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReserveType string

const (
	ReserveComputational ReserveType = "computational"
	ReserveStorage       ReserveType = "storage"
	ReserveEngagement    ReserveType = "engagement"
)

// ReserveTypes lists every known category; pool construction and validation
// iterate this rather than a map so the order is stable.
var ReserveTypes = []ReserveType{
	ReserveComputational,
	ReserveStorage,
	ReserveEngagement,
}

// ReserveStatus is the snapshot shape served to dashboards and pushed to the
// cache and analytics collector.
type ReserveStatus struct {
	Reserves map[ReserveType]decimal.Decimal `json:"reserves"`
	Total    decimal.Decimal                 `json:"total"`
	Time     time.Time                       `json:"time"`
}
