// Package api
package api

import (
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/cfg"
	"github.com/dacr-network/dacr-backend/server"
)

type restDefinition struct {
	method      string
	path        string
	fn          func(c echo.Context) error
	middlewares []echo.MiddlewareFunc
}

type restServer struct {
	srv    *server.Server
	cfg    cfg.ReserveConfig
	logger *zap.Logger
}

func bind(gr *echo.Group, srv *restServer) {
	authorized := requireToken(srv.cfg.JWTSecret)
	apis := []restDefinition{
		{
			method: echo.GET,
			path:   "/ping",
			fn:     srv.Ping,
		},
		{
			method: echo.GET,
			path:   "/health",
			fn:     srv.Health,
		},
		{
			method: echo.POST,
			path:   "/auth/token",
			fn:     srv.Token,
		},
		// Currency
		{
			method: echo.GET,
			path:   "/currency/info",
			fn:     srv.CurrencyInfo,
		},
		{
			method:      echo.POST,
			path:        "/currency/issue",
			fn:          srv.IssueCurrency,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		{
			method:      echo.POST,
			path:        "/currency/transfer",
			fn:          srv.TransferCurrency,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		{
			method:      echo.POST,
			path:        "/currency/burn",
			fn:          srv.BurnCurrency,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		// Reserves
		{
			method: echo.GET,
			path:   "/reserves/status",
			fn:     srv.ReserveStatus,
		},
		{
			method:      echo.POST,
			path:        "/reserves/add",
			fn:          srv.AddReserve,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		{
			method:      echo.POST,
			path:        "/reserves/remove",
			fn:          srv.RemoveReserve,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		// Governance
		{
			method:      echo.POST,
			path:        "/governance/proposals",
			fn:          srv.CreateProposal,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		{
			method: echo.GET,
			// Query params: ?status=active
			path: "/governance/proposals",
			fn:   srv.Proposals,
		},
		{
			method: echo.GET,
			path:   "/governance/proposals/:id",
			fn:     srv.Proposal,
		},
		{
			method: echo.GET,
			path:   "/governance/proposals/:id/votes",
			fn:     srv.ProposalVotes,
		},
		{
			method:      echo.POST,
			path:        "/governance/vote",
			fn:          srv.CastVote,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		{
			method:      echo.POST,
			path:        "/governance/proposals/:id/execute",
			fn:          srv.ExecuteProposal,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		// Rewards
		{
			method:      echo.POST,
			path:        "/rewards/distribute",
			fn:          srv.DistributeReward,
			middlewares: []echo.MiddlewareFunc{authorized},
		},
		{
			method: echo.GET,
			path:   "/rewards/:user",
			fn:     srv.RewardAccount,
		},
		// Ledger
		{
			method: echo.GET,
			path:   "/txs/:id",
			fn:     srv.Tx,
		},
		{
			method: echo.GET,
			// Query params: ?type=transfer&status=completed
			path: "/txs/address/:address",
			fn:   srv.TxsByAddress,
		},
		{
			method: echo.GET,
			// Query params: ?start=RFC3339&end=RFC3339
			path: "/txs/history",
			fn:   srv.TxHistory,
		},
		// Analytics
		{
			method: echo.GET,
			path:   "/analytics/supply",
			fn:     srv.SupplyMetrics,
		},
		{
			method: echo.GET,
			path:   "/analytics/transactions",
			fn:     srv.TransactionMetrics,
		},
		{
			method: echo.GET,
			path:   "/analytics/reserves",
			fn:     srv.ReserveMetrics,
		},
	}
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

func Start(e *echo.Echo, srv *server.Server, serviceCfg cfg.ReserveConfig) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	rest := &restServer{
		srv:    srv,
		cfg:    serviceCfg,
		logger: srv.Logger.With(zap.String("api", "rest")),
	}
	gr := e.Group("/api/v1")
	bind(gr, rest)

	if err := e.Start(":" + serviceCfg.Port); err != nil {
		panic("cannot start API server")
	}
}
