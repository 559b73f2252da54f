package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/domain/loan"
	loanuc "credito-inmobiliario/internal/usecase/loan"
)

type OwnerHandler struct {
	loans *loanuc.Usecase
	log   *zap.Logger
}

func NewOwnerHandler(loans *loanuc.Usecase, log *zap.Logger) *OwnerHandler {
	return &OwnerHandler{loans: loans, log: named(log, "owner")}
}

// requestLoanReq leaves rates to the admin; they are set when the draft is reviewed.
type requestLoanReq struct {
	AmountRequested decimal.Decimal `json:"amount_requested" validate:"dpos,dec2"`
	TermMonths      int             `json:"term_months" validate:"gte=1,lte=360"`
	PaymentType     string          `json:"payment_type" validate:"omitempty,oneof=interest_only principal_and_interest"`
	PropertyAddress string          `json:"property_address" validate:"required"`
	PropertyCity    string          `json:"property_city" validate:"required,max=120"`
	PropertyType    string          `json:"property_type" validate:"omitempty,max=60"`
	CommercialValue decimal.Decimal `json:"commercial_value" validate:"dnonneg,dec2"`
	Cosigners       []cosignerReq   `json:"cosigners" validate:"dive"`
}

func (h *OwnerHandler) Home(c echo.Context) error {
	list, err := h.loans.ListByOwner(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "propietario_home", "Mis créditos", list)
}

func (h *OwnerHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	pt := loan.PaymentType(req.PaymentType)
	if pt == "" {
		pt = loan.PaymentInterestOnly
	}
	in := loanuc.CreateLoanInput{
		OwnerID:         middleware.UserID(c),
		AmountRequested: req.AmountRequested,
		TermMonths:      req.TermMonths,
		PaymentType:     pt,
		PropertyAddress: req.PropertyAddress,
		PropertyCity:    req.PropertyCity,
		PropertyType:    req.PropertyType,
		CommercialValue: req.CommercialValue,
	}
	for _, cs := range req.Cosigners {
		in.Cosigners = append(in.Cosigners, loanuc.CosignerInput(cs))
	}
	view, err := h.loans.Request(c.Request().Context(), in)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusCreated, view)
}
