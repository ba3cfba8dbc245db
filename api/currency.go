// Package api
package api

import (
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type issueRequest struct {
	Amount    string `json:"amount"`
	Reason    string `json:"reason"`
	Recipient string `json:"recipient"`
}

type transferRequest struct {
	Amount    string            `json:"amount"`
	Recipient string            `json:"recipient"`
	Metadata  map[string]string `json:"metadata"`
}

type burnRequest struct {
	Amount string `json:"amount"`
	Reason string `json:"reason"`
	Holder string `json:"holder"`
}

func (s *restServer) CurrencyInfo(c echo.Context) error {
	info := s.srv.SupplyInfo(c.Request().Context())
	return OK.SetData(info).Build(c)
}

func (s *restServer) IssueCurrency(c echo.Context) error {
	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return Invalid.Build(c)
	}
	tx, err := s.srv.IssueCurrency(c.Request().Context(), amount, req.Reason, req.Recipient)
	if err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(tx).Build(c)
}

func (s *restServer) TransferCurrency(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return Invalid.Build(c)
	}
	tx, err := s.srv.TransferCurrency(c.Request().Context(), amount, currentUser(c), req.Recipient, req.Metadata)
	if err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(tx).Build(c)
}

func (s *restServer) BurnCurrency(c echo.Context) error {
	var req burnRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return Invalid.Build(c)
	}
	holder := req.Holder
	if holder == "" {
		holder = currentUser(c)
	}
	tx, err := s.srv.BurnCurrency(c.Request().Context(), amount, req.Reason, holder)
	if err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(tx).Build(c)
}
