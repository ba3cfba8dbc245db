// Package api
package api

import (
	"time"

	"github.com/labstack/echo"
)

func (s *restServer) Ping(c echo.Context) error {
	return OK.SetData("pong").Build(c)
}

func (s *restServer) Health(c echo.Context) error {
	status := "healthy"
	if !s.srv.ValidateReserves() {
		status = "degraded"
	}
	return OK.SetData(map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC(),
	}).Build(c)
}
