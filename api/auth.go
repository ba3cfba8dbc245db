// Package api
package api

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// Token exchanges the configured admin credentials for a bearer token.
func (s *restServer) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return Invalid.Build(c)
	}
	if req.Username == "" || req.Username != s.cfg.AdminUser || req.Password != s.cfg.AdminPassword {
		return Unauthorized.Build(c)
	}

	claims := jwt.MapClaims{
		"sub": req.Username,
		"exp": time.Now().Add(s.cfg.TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return InternalServer.Build(c)
	}
	return OK.SetData(tokenResponse{AccessToken: signed, TokenType: "bearer"}).Build(c)
}

// requireToken guards mutating routes. The subject claim is exposed to
// handlers under the "user" context key.
func requireToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return Unauthorized.Build(c)
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return Unauthorized.Build(c)
			}
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(string); ok {
					c.Set("user", sub)
				}
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) string {
	if user, ok := c.Get("user").(string); ok {
		return user
	}
	return ""
}
