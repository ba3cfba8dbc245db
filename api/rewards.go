// Package api
package api

import (
	"github.com/labstack/echo"

	"github.com/dacr-network/dacr-backend/types"
)

type distributeRequest struct {
	UserID   string            `json:"userId"`
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata"`
}

func (s *restServer) DistributeReward(c echo.Context) error {
	var req distributeRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	if req.UserID == "" {
		return Invalid.Build(c)
	}
	summary, err := s.srv.DistributeReward(c.Request().Context(), req.UserID, types.RewardType(req.Type), req.Metadata)
	if err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(summary).Build(c)
}

func (s *restServer) RewardAccount(c echo.Context) error {
	return OK.SetData(s.srv.RewardAccount(c.Param("user"))).Build(c)
}
