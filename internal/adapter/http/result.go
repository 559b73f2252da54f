package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/domain/funding"
	"credito-inmobiliario/internal/domain/investment"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/infrastructure/authprovider"
	investmentuc "credito-inmobiliario/internal/usecase/investment"
	loanuc "credito-inmobiliario/internal/usecase/loan"
	paymentuc "credito-inmobiliario/internal/usecase/payment"
	useruc "credito-inmobiliario/internal/usecase/user"
	"credito-inmobiliario/pkg/id"
)

// ActionResult is the envelope every server action answers with.
type ActionResult struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

const (
	msgInvalidBody = "invalid body"
	msgRetry       = "something went wrong, please try again"
)

func named(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.Named(name)
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, ActionResult{Success: true, Data: data})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, ActionResult{Error: msg})
}

// bindValid binds and validates req, writing the failure response itself.
// handled is true when the caller must stop.
func bindValid(c echo.Context, req any) (handled bool, err error) {
	if err := c.Bind(req); err != nil {
		return true, fail(c, http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(req); err != nil {
		return true, c.JSON(http.StatusUnprocessableEntity, ActionResult{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return false, nil
}

var badRequest = []error{
	funding.ErrInvalidAmount,
	funding.ErrFullyFunded,
	funding.ErrExceedsAvailable,
	loan.ErrNotFundraising,
	loan.ErrNotRepaying,
	loan.ErrInvalidTransition,
	investment.ErrInvalidTransition,
	investmentuc.ErrNotInvestor,
	investmentuc.ErrInvalidRate,
	loanuc.ErrInvalidInput,
	loanuc.ErrNotOwner,
	loanuc.ErrNotInvestor,
	paymentuc.ErrInvalidAmount,
	useruc.ErrInvalidInput,
	useruc.ErrRoleNotAllowed,
	authprovider.ErrUserExists,
}

// errBadID is an :id that cannot match any row.
var errBadID = errors.New("malformed id")

func idParam(c echo.Context) (string, error) {
	v := c.Param("id")
	if !id.IsUUID(v) {
		return "", errBadID
	}
	return v, nil
}

var notFound = []error{
	errBadID,
	loan.ErrNotFound,
	investment.ErrNotFound,
	profile.ErrNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// actionErr maps a usecase error onto the action envelope. Anything unexpected is
// logged and answered with a generic message.
func actionErr(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case isAny(err, badRequest):
		return fail(c, http.StatusBadRequest, err.Error())
	case isAny(err, notFound):
		return fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, authprovider.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	}
	log.Error("action failed",
		zap.String("method", c.Request().Method),
		zap.String("route", c.Path()),
		zap.Error(err))
	return fail(c, http.StatusInternalServerError, msgRetry)
}

// pageErr is the page-side counterpart of actionErr.
func pageErr(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case isAny(err, notFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case isAny(err, badRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	log.Error("page failed", zap.String("route", c.Path()), zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, msgRetry)
}
