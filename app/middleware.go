package app

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
)

func (app *Application) CreateSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := app.CookieStore.Get(c.Request(), "session")
		if err != nil {
			c.Logger().Error(err)
			return err
		}

		c.Set("session", session)

		return next(c)
	}
}

// RequireAuth accepts a bearer token or the auth cookie and stores the
// caller's identity on the request context.
func (app *Application) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := ""

		if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := c.Cookie(AuthCookieName); err == nil {
			tokenStr = cookie.Value
		}

		if tokenStr == "" {
			return models.Unauthorized("missing credentials")
		}

		claims, err := app.parseToken(tokenStr)
		if err != nil {
			return models.Unauthorized("invalid or expired token")
		}

		c.Set("user_id", claims.Subject)
		c.Set("is_admin", claims.IsAdmin)

		return next(c)
	}
}

func (app *Application) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, ok := c.Get("is_admin").(bool)
		if !ok || !isAdmin {
			return models.Forbidden("admin access required")
		}

		return next(c)
	}
}

// UpdateSpotifyTokenIfExpired refreshes the stored Spotify token ahead of
// proxy calls so handlers always read a live one.
func (app *Application) UpdateSpotifyTokenIfExpired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Get("user_id").(string)

		token, err := app.TokenStore.Get(c.Request().Context(), userID)
		if err != nil {
			c.Logger().Error(err)
			return err
		}

		if token == nil {
			return models.BadRequest("%s", models.ErrSpotifyNotLinked.Error())
		}

		checkedToken, err := app.Authenticator.RefreshToken(c.Request().Context(), token)
		if err != nil {
			c.Logger().Error(err)
			return models.BadRequest("%s", models.ErrTokenNotExists.Error())
		}

		if checkedToken.AccessToken != token.AccessToken {
			if err := app.TokenStore.Update(c.Request().Context(), userID, checkedToken); err != nil {
				c.Logger().Error(err)
				return err
			}
		}

		return next(c)
	}
}
