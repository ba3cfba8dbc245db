// Package api
package api

import (
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"

	"github.com/dacr-network/dacr-backend/types"
)

type proposalRequest struct {
	Type             string            `json:"type"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	ParameterChanges map[string]string `json:"parameterChanges"`
}

type voteRequest struct {
	ProposalID string `json:"proposalId"`
	Support    bool   `json:"support"`
	Weight     string `json:"weight"`
}

func (s *restServer) CreateProposal(c echo.Context) error {
	var req proposalRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	if req.Title == "" {
		return Invalid.Build(c)
	}
	p := s.srv.CreateProposal(c.Request().Context(), currentUser(c), types.ProposalType(req.Type), req.Title, req.Description, req.ParameterChanges)
	return OK.SetData(p).Build(c)
}

func (s *restServer) Proposals(c echo.Context) error {
	status := types.ProposalStatus(c.QueryParam("status"))
	return OK.SetData(s.srv.GetProposals(status)).Build(c)
}

func (s *restServer) Proposal(c echo.Context) error {
	p := s.srv.GetProposal(c.Param("id"))
	if p == nil {
		return NotFound.Build(c)
	}
	return OK.SetData(p).Build(c)
}

func (s *restServer) ProposalVotes(c echo.Context) error {
	return OK.SetData(s.srv.GetVotes(c.Param("id"))).Build(c)
}

func (s *restServer) CastVote(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	weight, err := decimal.NewFromString(req.Weight)
	if err != nil {
		return Invalid.Build(c)
	}
	if err := s.srv.CastVote(c.Request().Context(), req.ProposalID, currentUser(c), req.Support, weight); err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(s.srv.GetProposal(req.ProposalID)).Build(c)
}

func (s *restServer) ExecuteProposal(c echo.Context) error {
	if err := s.srv.ExecuteProposal(c.Request().Context(), c.Param("id")); err != nil {
		return fromError(err).Build(c)
	}
	return OK.SetData(s.srv.GetProposal(c.Param("id"))).Build(c)
}
