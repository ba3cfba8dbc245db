package server

import (
	"time"

	"github.com/dacr-network/dacr-backend/analytics"
	"github.com/dacr-network/dacr-backend/types"
)

func (s *Server) GetTx(id string) *types.Transaction {
	return s.txStore.Get(id)
}

func (s *Server) TxsByAddress(address string, txType types.TransactionType, status types.TransactionStatus) []*types.Transaction {
	return s.txStore.ByAddress(address, txType, status)
}

func (s *Server) TxHistory(start, end *time.Time) []*types.Transaction {
	return s.txStore.History(start, end)
}

func (s *Server) SupplyMetrics(start, end *time.Time) analytics.SupplyMetrics {
	return s.collector.GetSupplyMetrics(start, end)
}

func (s *Server) TransactionMetrics(start, end *time.Time) analytics.TransactionMetrics {
	return s.collector.GetTransactionMetrics(start, end)
}

func (s *Server) ReserveMetrics(start, end *time.Time) analytics.ReserveMetrics {
	return s.collector.GetReserveMetrics(start, end)
}
