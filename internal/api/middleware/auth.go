package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated from the token claims.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
	KeyEmail  = "email"
)

// Auth validates the bearer JWT and injects claims into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, false)
}

// QueryAuth behaves like Auth but also accepts the token in the "token" query
// parameter, for websocket clients that cannot set headers.
func QueryAuth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, true)
}

func authenticate(jwtSecret string, allowQuery bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractToken(c, allowQuery)
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, _ := claims.GetSubject()
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			c.Set(KeyUserID, sub)
			c.Set(KeyRole, claims["role"])
			c.Set(KeyEmail, claims["email"])

			return next(c)
		}
	}
}

func extractToken(c echo.Context, allowQuery bool) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if allowQuery {
			if token := c.QueryParam("token"); token != "" {
				return token, nil
			}
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
