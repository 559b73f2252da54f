package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/domain/loan"
	investmentuc "credito-inmobiliario/internal/usecase/investment"
	loanuc "credito-inmobiliario/internal/usecase/loan"
	paymentuc "credito-inmobiliario/internal/usecase/payment"
)

type InvestorHandler struct {
	loans       *loanuc.Usecase
	investments *investmentuc.Usecase
	payments    *paymentuc.Usecase
	log         *zap.Logger
}

func NewInvestorHandler(loans *loanuc.Usecase, investments *investmentuc.Usecase, payments *paymentuc.Usecase, log *zap.Logger) *InvestorHandler {
	return &InvestorHandler{loans: loans, investments: investments, payments: payments, log: named(log, "investor")}
}

type investReq struct {
	Amount decimal.Decimal `json:"amount" validate:"dpos,dec2"`
}

func (h *InvestorHandler) Portfolio(c echo.Context) error {
	p, err := h.payments.Portfolio(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "inversionista_portafolio", "Mi portafolio", p)
}

func (h *InvestorHandler) Opportunities(c echo.Context) error {
	list, err := h.loans.ListFundraising(c.Request().Context())
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "inversionista_oportunidades", "Oportunidades", list)
}

// Opportunity only shows loans that are still raising funds.
func (h *InvestorHandler) Opportunity(c echo.Context) error {
	lid, err := idParam(c)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	view, err := h.loans.Get(c.Request().Context(), lid)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	if view.Status != string(loan.StatusFundraising) {
		return pageErr(c, h.log, loan.ErrNotFound)
	}
	return render(c, "inversionista_oportunidad", view.Code, view)
}

func (h *InvestorHandler) Invest(c echo.Context) error {
	var req investReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	lid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	dto, err := h.investments.Invest(c.Request().Context(), investmentuc.InvestInput{
		LoanID:     lid,
		InvestorID: middleware.UserID(c),
		Amount:     req.Amount,
	})
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusCreated, dto)
}
