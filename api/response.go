// Package api
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"

	"github.com/dacr-network/dacr-backend/types"
)

var (
	OK                 = EchoResponse{StatusCode: http.StatusOK, Code: 1000, Msg: "Success"}
	InternalServer     = EchoResponse{StatusCode: http.StatusInternalServerError, Code: 1100, Msg: "Server busy..."}
	Invalid            = EchoResponse{StatusCode: http.StatusBadRequest, Code: 1101, Msg: "Bad request"}
	NotFound           = EchoResponse{StatusCode: http.StatusNotFound, Code: 1102, Msg: "Not found"}
	PreconditionFailed = EchoResponse{StatusCode: http.StatusPreconditionFailed, Code: 1103, Msg: "Precondition failed"}
	Unauthorized       = EchoResponse{StatusCode: http.StatusUnauthorized, Code: 401, Msg: "Unauthorized"}
)

type EchoResponse struct {
	StatusCode int         `json:"-"`
	Code       int         `json:"code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data,omitempty"`
}

func (r *EchoResponse) SetData(data interface{}) *EchoResponse {
	r.Data = data
	return r
}

func (r *EchoResponse) SetMsg(msg string) *EchoResponse {
	r.Msg = msg
	return r
}

func (r *EchoResponse) Build(c echo.Context) error {
	return c.JSON(r.StatusCode, r)
}

// fromError maps the shared failure kinds onto response envelopes.
func fromError(err error) *EchoResponse {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		r := Invalid
		return r.SetMsg(err.Error())
	case errors.Is(err, types.ErrNotFound):
		r := NotFound
		return r.SetMsg(err.Error())
	case errors.Is(err, types.ErrPreconditionFailed):
		r := PreconditionFailed
		return r.SetMsg(err.Error())
	default:
		r := InternalServer
		return &r
	}
}
