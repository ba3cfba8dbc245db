// Package api
package api

import (
	"time"

	"github.com/labstack/echo"

	"github.com/dacr-network/dacr-backend/types"
)

func (s *restServer) Tx(c echo.Context) error {
	tx := s.srv.GetTx(c.Param("id"))
	if tx == nil {
		return NotFound.Build(c)
	}
	return OK.SetData(tx).Build(c)
}

func (s *restServer) TxsByAddress(c echo.Context) error {
	txs := s.srv.TxsByAddress(
		c.Param("address"),
		types.TransactionType(c.QueryParam("type")),
		types.TransactionStatus(c.QueryParam("status")),
	)
	return OK.SetData(txs).Build(c)
}

func (s *restServer) TxHistory(c echo.Context) error {
	start, err := timeParam(c.QueryParam("start"))
	if err != nil {
		return Invalid.Build(c)
	}
	end, err := timeParam(c.QueryParam("end"))
	if err != nil {
		return Invalid.Build(c)
	}
	return OK.SetData(s.srv.TxHistory(start, end)).Build(c)
}

func (s *restServer) SupplyMetrics(c echo.Context) error {
	start, err := timeParam(c.QueryParam("start"))
	if err != nil {
		return Invalid.Build(c)
	}
	end, err := timeParam(c.QueryParam("end"))
	if err != nil {
		return Invalid.Build(c)
	}
	return OK.SetData(s.srv.SupplyMetrics(start, end)).Build(c)
}

func (s *restServer) TransactionMetrics(c echo.Context) error {
	start, err := timeParam(c.QueryParam("start"))
	if err != nil {
		return Invalid.Build(c)
	}
	end, err := timeParam(c.QueryParam("end"))
	if err != nil {
		return Invalid.Build(c)
	}
	return OK.SetData(s.srv.TransactionMetrics(start, end)).Build(c)
}

func (s *restServer) ReserveMetrics(c echo.Context) error {
	start, err := timeParam(c.QueryParam("start"))
	if err != nil {
		return Invalid.Build(c)
	}
	end, err := timeParam(c.QueryParam("end"))
	if err != nil {
		return Invalid.Build(c)
	}
	return OK.SetData(s.srv.ReserveMetrics(start, end)).Build(c)
}

func timeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
