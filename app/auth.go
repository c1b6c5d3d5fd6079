package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

const (
	lockoutThreshold = 5
	lockoutWindow    = 15 * time.Minute

	verificationTokenLifetime = 24 * time.Hour
	resetTokenLifetime        = time.Hour
)

func (app *Application) HandleRegister(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if exists, err := app.UserStore.IsExists("username = ?", req.Username); err != nil {
		c.Logger().Error(err)
		return err
	} else if exists {
		return models.Conflict("username already taken")
	}

	if exists, err := app.UserStore.IsExists("email = ?", req.Email); err != nil {
		c.Logger().Error(err)
		return err
	} else if exists {
		return models.Conflict("email already registered")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	user := models.UserDBModel{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := app.UserStore.Create(user); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.SettingsStore.Create(models.UserSettingsDBModel{
		UserID:                user.UserID,
		PomodoroMinutes:       25,
		ShortBreakMinutes:     5,
		LongBreakMinutes:      15,
		PomodorosPerLongBreak: 4,
		SoundEnabled:          true,
		NotificationsEnabled:  true,
	}); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.issueVerification(&user); err != nil {
		// The account exists; the user can ask for a new mail.
		c.Logger().Error(err)
	}

	return c.JSON(http.StatusCreated, models.MessageResponse{
		Message: "account created, check your email to verify it",
	})
}

func (app *Application) issueVerification(user *models.UserDBModel) error {
	token, err := randomToken()
	if err != nil {
		return err
	}

	if err := app.VerificationTokenStore.Create(models.VerificationTokenDBModel{
		Token:     token,
		UserID:    user.UserID,
		ExpiresAt: time.Now().Add(verificationTokenLifetime),
	}); err != nil {
		return err
	}

	return app.Mailer.SendVerification(user.Email, user.Username, token)
}

func (app *Application) HandleLogin(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now()

	count, err := app.LoginAttemptStore.CountSince(req.Email, now.Add(-lockoutWindow))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if count >= lockoutThreshold {
		return models.Locked("too many failed login attempts, try again later")
	}

	user, err := app.UserStore.GetOne("email = ?", req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return app.failLogin(c, req.Email, now)
		}

		c.Logger().Error(err)
		return err
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		return app.failLogin(c, req.Email, now)
	}

	if err := app.LoginAttemptStore.Clear(req.Email); err != nil {
		c.Logger().Error(err)
	}

	token, err := app.issueToken(user)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	app.setAuthCookie(c, token)

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  *user,
	})
}

func (app *Application) failLogin(c echo.Context, email string, at time.Time) error {
	if err := app.LoginAttemptStore.Record(email, at); err != nil {
		c.Logger().Error(err)
	}

	return models.Unauthorized("%s", models.ErrInvalidCredentials.Error())
}

func (app *Application) HandleLogout(c echo.Context) error {
	app.clearAuthCookie(c)

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "logged out"})
}

func (app *Application) HandleVerifyEmail(c echo.Context) error {
	row, err := app.VerificationTokenStore.GetOne(c.Param("token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BadRequest("invalid verification link")
		}

		c.Logger().Error(err)
		return err
	}

	if time.Now().After(row.ExpiresAt) {
		return models.BadRequest("verification link expired, request a new one")
	}

	if err := app.UserStore.Update(map[string]any{"is_verified": true}, "user_id = ?", row.UserID); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.VerificationTokenStore.Delete("user_id = ?", row.UserID); err != nil {
		c.Logger().Error(err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "email verified"})
}

func (app *Application) HandleResendVerification(c echo.Context) error {
	var req models.ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := app.UserStore.GetOne("email = ?", req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NotFound("no account with that email")
		}

		c.Logger().Error(err)
		return err
	}

	if user.IsVerified {
		return models.BadRequest("account already verified")
	}

	if err := app.VerificationTokenStore.Delete("user_id = ?", user.UserID); err != nil {
		c.Logger().Error(err)
	}

	if err := app.issueVerification(user); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "verification mail sent"})
}

// HandleForgotPassword always answers 200 so the endpoint cannot be used to
// probe which emails are registered.
func (app *Application) HandleForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	response := c.JSON(http.StatusOK, models.MessageResponse{
		Message: "if that account exists, a reset mail is on its way",
	})

	user, err := app.UserStore.GetOne("email = ?", req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.Logger().Error(err)
		}

		return response
	}

	token, err := randomToken()
	if err != nil {
		c.Logger().Error(err)
		return response
	}

	if err := app.ResetTokenStore.Create(models.ResetTokenDBModel{
		Token:     token,
		UserID:    user.UserID,
		ExpiresAt: time.Now().Add(resetTokenLifetime),
	}); err != nil {
		c.Logger().Error(err)
		return response
	}

	if err := app.Mailer.SendPasswordReset(user.Email, user.Username, token); err != nil {
		c.Logger().Error(err)
	}

	return response
}

func (app *Application) HandleResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	row, err := app.ResetTokenStore.GetOne(req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BadRequest("invalid reset link")
		}

		c.Logger().Error(err)
		return err
	}

	if row.Used {
		return models.BadRequest("reset link already used")
	}

	if time.Now().After(row.ExpiresAt) {
		return models.BadRequest("reset link expired")
	}

	user, err := app.UserStore.GetOne("user_id = ?", row.UserID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.UserStore.Update(map[string]any{"password_hash": hash}, "user_id = ?", user.UserID); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.ResetTokenStore.MarkUsed(req.Token); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.LoginAttemptStore.Clear(user.Email); err != nil {
		c.Logger().Error(err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "password updated"})
}
