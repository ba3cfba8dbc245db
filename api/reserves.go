// Package api
package api

import (
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"

	"github.com/dacr-network/dacr-backend/types"
)

type reserveRequest struct {
	Reserve string `json:"reserve"`
	Amount  string `json:"amount"`
}

func (s *restServer) ReserveStatus(c echo.Context) error {
	status := s.srv.ReserveStatus(c.Request().Context())
	return OK.SetData(status).Build(c)
}

func (s *restServer) AddReserve(c echo.Context) error {
	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return Invalid.Build(c)
	}
	if err := s.srv.AddReserve(c.Request().Context(), types.ReserveType(req.Reserve), amount); err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(s.srv.ReserveStatus(c.Request().Context())).Build(c)
}

func (s *restServer) RemoveReserve(c echo.Context) error {
	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return Invalid.Build(c)
	}
	if err := s.srv.RemoveReserve(c.Request().Context(), types.ReserveType(req.Reserve), amount); err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(s.srv.ReserveStatus(c.Request().Context())).Build(c)
}
