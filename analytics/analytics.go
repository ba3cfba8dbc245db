// Package analytics
package analytics

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

type supplyPoint struct {
	time   time.Time
	supply decimal.Decimal
}

type SupplyMetrics struct {
	CurrentSupply decimal.Decimal `json:"currentSupply"`
	MaxSupply     decimal.Decimal `json:"maxSupply"`
	MinSupply     decimal.Decimal `json:"minSupply"`
	AverageSupply decimal.Decimal `json:"averageSupply"`
}

type TransactionMetrics struct {
	TotalVolume        decimal.Decimal `json:"totalVolume"`
	AverageDailyVolume decimal.Decimal `json:"averageDailyVolume"`
	TotalActiveUsers   int             `json:"totalActiveUsers"`
	AverageDailyUsers  decimal.Decimal `json:"averageDailyUsers"`
}

type ReserveMetrics struct {
	CurrentReserves map[types.ReserveType]decimal.Decimal `json:"currentReserves"`
	AverageReserves map[types.ReserveType]decimal.Decimal `json:"averageReserves"`
	MinReserves     map[types.ReserveType]decimal.Decimal `json:"minReserves"`
	MaxReserves     map[types.ReserveType]decimal.Decimal `json:"maxReserves"`
}

type Config struct {
	Logger *zap.Logger
}

// Collector accumulates fire-and-forget observations from the core and
// answers metric queries over them. Record calls never report errors back to
// the hot path.
type Collector struct {
	mu            sync.Mutex
	supplyHistory []supplyPoint
	txVolume      map[time.Time]decimal.Decimal      // day bucket -> volume
	activeUsers   map[time.Time]map[string]struct{}  // day bucket -> user set
	reserveHist   []reservePoint

	logger *zap.Logger
}

type reservePoint struct {
	time     time.Time
	reserves map[types.ReserveType]decimal.Decimal
}

func NewCollector(cfg Config) *Collector {
	return &Collector{
		txVolume:    make(map[time.Time]decimal.Decimal),
		activeUsers: make(map[time.Time]map[string]struct{}),
		logger:      cfg.Logger.With(zap.String("component", "analytics")),
	}
}

func (c *Collector) RecordSupplyChange(supply decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supplyHistory = append(c.supplyHistory, supplyPoint{time: time.Now().UTC(), supply: supply})
	c.logger.Debug("Recorded supply change", zap.String("supply", supply.String()))
}

func (c *Collector) RecordTransaction(amount decimal.Decimal, userID string, ts time.Time) {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	day := dayOf(ts)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.txVolume[day] = c.txVolume[day].Add(amount)
	users, ok := c.activeUsers[day]
	if !ok {
		users = make(map[string]struct{})
		c.activeUsers[day] = users
	}
	users[userID] = struct{}{}
	c.logger.Debug("Recorded transaction", zap.String("amount", amount.String()))
}

func (c *Collector) RecordReserveState(reserves map[types.ReserveType]decimal.Decimal, ts time.Time) {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	cp := make(map[types.ReserveType]decimal.Decimal, len(reserves))
	for rt, amount := range reserves {
		cp[rt] = amount
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reserveHist = append(c.reserveHist, reservePoint{time: ts, reserves: cp})
	c.logger.Debug("Recorded reserve state")
}

// GetSupplyMetrics summarizes recorded supply levels inside the optional
// [start, end] window.
func (c *Collector) GetSupplyMetrics(start, end *time.Time) SupplyMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	var points []supplyPoint
	for _, p := range c.supplyHistory {
		if start != nil && p.time.Before(*start) {
			continue
		}
		if end != nil && p.time.After(*end) {
			continue
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return SupplyMetrics{
			CurrentSupply: decimal.Zero,
			MaxSupply:     decimal.Zero,
			MinSupply:     decimal.Zero,
			AverageSupply: decimal.Zero,
		}
	}

	max, min, sum := points[0].supply, points[0].supply, decimal.Zero
	for _, p := range points {
		if p.supply.GreaterThan(max) {
			max = p.supply
		}
		if p.supply.LessThan(min) {
			min = p.supply
		}
		sum = sum.Add(p.supply)
	}
	return SupplyMetrics{
		CurrentSupply: points[len(points)-1].supply,
		MaxSupply:     max,
		MinSupply:     min,
		AverageSupply: sum.Div(decimal.NewFromInt(int64(len(points)))),
	}
}

func (c *Collector) GetTransactionMetrics(start, end *time.Time) TransactionMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalVolume := decimal.Zero
	days := 0
	unique := make(map[string]struct{})
	userDays := decimal.Zero
	for day, volume := range c.txVolume {
		if !dayInRange(day, start, end) {
			continue
		}
		totalVolume = totalVolume.Add(volume)
		days++
		for user := range c.activeUsers[day] {
			unique[user] = struct{}{}
		}
		userDays = userDays.Add(decimal.NewFromInt(int64(len(c.activeUsers[day]))))
	}
	if days == 0 {
		return TransactionMetrics{
			TotalVolume:        decimal.Zero,
			AverageDailyVolume: decimal.Zero,
			AverageDailyUsers:  decimal.Zero,
		}
	}
	dayCount := decimal.NewFromInt(int64(days))
	return TransactionMetrics{
		TotalVolume:        totalVolume,
		AverageDailyVolume: totalVolume.Div(dayCount),
		TotalActiveUsers:   len(unique),
		AverageDailyUsers:  userDays.Div(dayCount),
	}
}

func (c *Collector) GetReserveMetrics(start, end *time.Time) ReserveMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	var points []reservePoint
	for _, p := range c.reserveHist {
		if start != nil && p.time.Before(*start) {
			continue
		}
		if end != nil && p.time.After(*end) {
			continue
		}
		points = append(points, p)
	}
	metrics := ReserveMetrics{
		CurrentReserves: make(map[types.ReserveType]decimal.Decimal),
		AverageReserves: make(map[types.ReserveType]decimal.Decimal),
		MinReserves:     make(map[types.ReserveType]decimal.Decimal),
		MaxReserves:     make(map[types.ReserveType]decimal.Decimal),
	}
	if len(points) == 0 {
		return metrics
	}

	latest := points[0]
	for _, p := range points {
		if !p.time.Before(latest.time) {
			latest = p
		}
	}
	metrics.CurrentReserves = latest.reserves

	for _, rt := range types.ReserveTypes {
		sum, count := decimal.Zero, 0
		var min, max decimal.Decimal
		for i, p := range points {
			v := p.reserves[rt]
			if i == 0 {
				min, max = v, v
			}
			if v.LessThan(min) {
				min = v
			}
			if v.GreaterThan(max) {
				max = v
			}
			sum = sum.Add(v)
			count++
		}
		metrics.AverageReserves[rt] = sum.Div(decimal.NewFromInt(int64(count)))
		metrics.MinReserves[rt] = min
		metrics.MaxReserves[rt] = max
	}
	return metrics
}

func dayOf(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

func dayInRange(day time.Time, start, end *time.Time) bool {
	if start != nil && day.Before(dayOf(*start)) {
		return false
	}
	if end != nil && day.After(dayOf(*end)) {
		return false
	}
	return true
}
