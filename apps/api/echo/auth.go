package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

const contextUserKey = "user"

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	errUsrNotFoundCtx = errors.New("user object not found in echo.Context")
)

// sessionToken reads the session cookie (plain or __Secure- prefixed), falling back on a Bearer header.
// Signed cookies carry "<token>.<signature>": only the token part is looked up.
func sessionToken(ctx echo.Context, conf core.SessionConfig) string {
	var raw string
	for _, name := range []string{conf.CookieName, conf.SecureCookieName} {
		if name == "" {
			continue
		}
		if cookie, err := ctx.Cookie(name); err == nil && cookie.Value != "" {
			raw = cookie.Value
			break
		}
	}
	if raw == "" {
		auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
			raw = strings.TrimSpace(auth[7:])
		}
	}
	token, _, _ := strings.Cut(raw, ".")
	return token
}

func sessionMiddleware(conf core.SessionConfig, svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := sessionToken(ctx, conf)
			if token == "" {
				return errUnauthorized
			}
			usr, err := svc.Authenticate(ctx.Request().Context(), token)
			if err != nil {
				if errors.Cause(err) == user.ErrSessionNotFound {
					return errUnauthorized
				}
				return failed(err, "authenticate")
			}
			if usr.Banned {
				return errUnauthorized
			}
			ctx.Set(contextUserKey, usr)
			return next(ctx)
		}
	}
}

func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr, err := getContextUser(ctx)
		if err != nil {
			return errUnauthorized
		}
		if !usr.IsAdmin() {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errUsrNotFoundCtx
}

// ctxUserID is the id of the authenticated user. Only called behind sessionMiddleware.
func ctxUserID(ctx echo.Context) string {
	usr, _ := getContextUser(ctx)
	return usr.ID
}
