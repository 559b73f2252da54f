package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/adapter/export"
	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/domain/funding"
	"credito-inmobiliario/internal/domain/loan"
	"credito-inmobiliario/internal/domain/payment"
	"credito-inmobiliario/internal/domain/profile"
	investmentuc "credito-inmobiliario/internal/usecase/investment"
	loanuc "credito-inmobiliario/internal/usecase/loan"
	paymentuc "credito-inmobiliario/internal/usecase/payment"
	useruc "credito-inmobiliario/internal/usecase/user"
)

const dateLayout = "2006-01-02"

type AdminHandler struct {
	users       *useruc.Usecase
	loans       *loanuc.Usecase
	investments *investmentuc.Usecase
	payments    *paymentuc.Usecase
	log         *zap.Logger
	now         func() time.Time
}

func NewAdminHandler(users *useruc.Usecase, loans *loanuc.Usecase, investments *investmentuc.Usecase, payments *paymentuc.Usecase, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		users:       users,
		loans:       loans,
		investments: investments,
		payments:    payments,
		log:         named(log, "admin"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type createUserReq struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" validate:"required,max=160"`
	Phone      string `json:"phone" validate:"omitempty,max=40"`
	DocumentID string `json:"document_id" validate:"omitempty,max=40"`
	Role       string `json:"role" validate:"required,oneof=admin inversionista propietario"`
}

type verificationReq struct {
	Status string `json:"status" validate:"required,oneof=pending verified rejected"`
}

type cosignerReq struct {
	FullName   string `json:"full_name" validate:"required,max=160"`
	DocumentID string `json:"document_id" validate:"required,max=40"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=40"`
}

type initialInvestmentReq struct {
	InvestorID string              `json:"investor_id" validate:"required,uuid"`
	Amount     decimal.Decimal     `json:"amount" validate:"dpos,dec2"`
	CustomRate decimal.NullDecimal `json:"custom_rate" validate:"omitempty,rate"`
}

type createLoanReq struct {
	OwnerID         string                 `json:"owner_id" validate:"required,uuid"`
	AmountRequested decimal.Decimal        `json:"amount_requested" validate:"dpos,dec2"`
	InterestRateNM  decimal.Decimal        `json:"interest_rate_nm" validate:"rate"`
	InterestRateEA  decimal.Decimal        `json:"interest_rate_ea" validate:"rate"` // 0 derives it
	TermMonths      int                    `json:"term_months" validate:"gte=1,lte=360"`
	PaymentType     string                 `json:"payment_type" validate:"required,oneof=interest_only principal_and_interest"`
	PropertyAddress string                 `json:"property_address" validate:"required"`
	PropertyCity    string                 `json:"property_city" validate:"required,max=120"`
	PropertyType    string                 `json:"property_type" validate:"omitempty,max=60"`
	CommercialValue decimal.Decimal        `json:"commercial_value" validate:"dnonneg,dec2"`
	Draft           bool                   `json:"draft"`
	Cosigners       []cosignerReq          `json:"cosigners" validate:"dive"`
	Investments     []initialInvestmentReq `json:"investments" validate:"dive"`
}

// statusReq optionally carries the terms that complete an owner's draft.
type statusReq struct {
	Status         string              `json:"status" validate:"required,oneof=draft fundraising active late paid defaulted cancelled"`
	InterestRateNM decimal.NullDecimal `json:"interest_rate_nm" validate:"omitempty,rate"`
	InterestRateEA decimal.NullDecimal `json:"interest_rate_ea" validate:"omitempty,rate"`
	TermMonths     int                 `json:"term_months" validate:"omitempty,gte=1,lte=360"`
	PaymentType    string              `json:"payment_type" validate:"omitempty,oneof=interest_only principal_and_interest"`
}

type addInvestmentReq struct {
	InvestorID string              `json:"investor_id" validate:"required,uuid"`
	Amount     decimal.Decimal     `json:"amount" validate:"dpos,dec2"`
	CustomRate decimal.NullDecimal `json:"custom_rate" validate:"omitempty,rate"`
}

type paymentReq struct {
	Capital     decimal.Decimal `json:"amount_capital" validate:"dnonneg,dec2"`
	Interest    decimal.Decimal `json:"amount_interest" validate:"dnonneg,dec2"`
	LateFee     decimal.Decimal `json:"amount_late_fee" validate:"dnonneg,dec2"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       string          `json:"notes" validate:"omitempty,max=500"`
}

type adminHome struct {
	Summary      []loan.StatusTotal
	PendingCount int
}

type loanDetail struct {
	Loan        *loanuc.LoanView
	Investments []investmentuc.InvestmentDTO
	Payments    []payment.LoanPayment
	Totals      funding.PaymentTotals
}

func (h *AdminHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	summary, err := h.loans.Summary(ctx)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	pending, err := h.investments.Pending(ctx)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "admin_home", "Resumen", adminHome{Summary: summary, PendingCount: len(pending)})
}

func (h *AdminHandler) Users(c echo.Context) error {
	list, err := h.users.List(c.Request().Context(), profile.Role(c.QueryParam("rol")))
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "admin_usuarios", "Usuarios", list)
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	p, err := h.users.CreateUser(c.Request().Context(), useruc.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Role:       profile.Role(req.Role),
		FullName:   req.FullName,
		Phone:      req.Phone,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusCreated, p)
}

func (h *AdminHandler) SetVerification(c echo.Context) error {
	var req verificationReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	uid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	p, err := h.users.SetVerification(c.Request().Context(), uid, profile.Verification(req.Status))
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *AdminHandler) Loans(c echo.Context) error {
	rows, err := h.loans.Dashboard(c.Request().Context(), loan.Status(c.QueryParam("estado")))
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "admin_creditos", "Créditos", rows)
}

func (h *AdminHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	in := loanuc.CreateLoanInput{
		OwnerID:         req.OwnerID,
		CreatedBy:       middleware.UserID(c),
		AmountRequested: req.AmountRequested,
		InterestRateNM:  req.InterestRateNM,
		InterestRateEA:  req.InterestRateEA,
		TermMonths:      req.TermMonths,
		PaymentType:     loan.PaymentType(req.PaymentType),
		PropertyAddress: req.PropertyAddress,
		PropertyCity:    req.PropertyCity,
		PropertyType:    req.PropertyType,
		CommercialValue: req.CommercialValue,
		Draft:           req.Draft,
	}
	for _, cs := range req.Cosigners {
		in.Cosigners = append(in.Cosigners, loanuc.CosignerInput(cs))
	}
	for _, ii := range req.Investments {
		in.Investments = append(in.Investments, loanuc.InitialInvestment{
			InvestorID: ii.InvestorID,
			Amount:     ii.Amount,
			CustomRate: ii.CustomRate,
		})
	}
	view, err := h.loans.Create(c.Request().Context(), in)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	h.log.Info("loan created", zap.String("loan_id", view.ID), zap.String("code", view.Code),
		zap.Int("investments", len(in.Investments)))
	return ok(c, http.StatusCreated, view)
}

func (h *AdminHandler) ExportLoans(c echo.Context) error {
	rows, err := h.loans.Dashboard(c.Request().Context(), loan.Status(c.QueryParam("estado")))
	if err != nil {
		return pageErr(c, h.log, err)
	}
	b, err := export.LoansXLSX(rows)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	name := fmt.Sprintf("creditos-%s.xlsx", h.now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.ContentType, b)
}

func (h *AdminHandler) LoanDetail(c echo.Context) error {
	ctx := c.Request().Context()
	lid, err := idParam(c)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	view, err := h.loans.Get(ctx, lid)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	invs, err := h.investments.ListByLoan(ctx, view.ID)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	pays, totals, err := h.payments.ListByLoan(ctx, view.ID)
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "admin_credito", view.Code, loanDetail{
		Loan:        view,
		Investments: invs,
		Payments:    pays,
		Totals:      totals,
	})
}

func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	lid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	dto, err := h.loans.UpdateStatus(c.Request().Context(), lid, loanuc.StatusInput{
		Status:         loan.Status(req.Status),
		InterestRateNM: req.InterestRateNM,
		InterestRateEA: req.InterestRateEA,
		TermMonths:     req.TermMonths,
		PaymentType:    loan.PaymentType(req.PaymentType),
	})
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *AdminHandler) AddInvestment(c echo.Context) error {
	var req addInvestmentReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	lid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	dto, err := h.investments.AddManual(c.Request().Context(), middleware.UserID(c), investmentuc.InvestInput{
		LoanID:     lid,
		InvestorID: req.InvestorID,
		Amount:     req.Amount,
		CustomRate: req.CustomRate,
	})
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *AdminHandler) RegisterPayment(c echo.Context) error {
	var req paymentReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	lid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	date := h.now()
	if req.PaymentDate != "" {
		// already checked by the datetime rule
		date, _ = time.Parse(dateLayout, req.PaymentDate)
	}
	p, err := h.payments.Register(c.Request().Context(), paymentuc.RegisterInput{
		LoanID:      lid,
		Capital:     req.Capital,
		Interest:    req.Interest,
		LateFee:     req.LateFee,
		PaymentDate: date,
		RecordedBy:  middleware.UserID(c),
		Notes:       req.Notes,
	})
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusCreated, p)
}

func (h *AdminHandler) Treasury(c echo.Context) error {
	rows, err := h.investments.Pending(c.Request().Context())
	if err != nil {
		return pageErr(c, h.log, err)
	}
	return render(c, "admin_tesoreria", "Tesorería", rows)
}

func (h *AdminHandler) Approve(c echo.Context) error {
	iid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	dto, err := h.investments.Approve(c.Request().Context(), iid, middleware.UserID(c))
	if err != nil {
		return actionErr(c, h.log, err)
	}
	h.log.Info("investment approved", zap.String("investment_id", dto.ID), zap.String("loan_id", dto.LoanID))
	return ok(c, http.StatusOK, dto)
}

func (h *AdminHandler) Reject(c echo.Context) error {
	iid, err := idParam(c)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	dto, err := h.investments.Reject(c.Request().Context(), iid, middleware.UserID(c))
	if err != nil {
		return actionErr(c, h.log, err)
	}
	h.log.Info("investment rejected", zap.String("investment_id", dto.ID), zap.String("loan_id", dto.LoanID))
	return ok(c, http.StatusOK, dto)
}
