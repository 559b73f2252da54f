package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"credito-inmobiliario/internal/adapter/middleware"
)

type Handlers struct {
	Health   *Handler
	Auth     *AuthHandler
	Admin    *AdminHandler
	Investor *InvestorHandler
	Owner    *OwnerHandler
}

// Guards run in order on everything under /dashboard.
type Guards struct {
	Session     echo.MiddlewareFunc
	RoleGuard   echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, h Handlers, g Guards, metrics http.Handler) {
	e.GET("/health", h.Health.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	e.GET("/", h.Auth.Landing)
	e.GET("/login", h.Auth.LoginPage)
	e.POST("/login", h.Auth.Login)
	e.GET("/registro", h.Auth.RegisterPage)
	e.POST("/registro", h.Auth.Register)
	e.POST("/auth/signout", h.Auth.SignOut)

	dash := e.Group("/dashboard", g.Session, g.RoleGuard, g.Idempotency)
	dash.GET("", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, middleware.Role(c).Home())
	})

	admin := dash.Group("/admin")
	admin.GET("", h.Admin.Home)
	admin.GET("/usuarios", h.Admin.Users)
	admin.POST("/usuarios", h.Admin.CreateUser)
	admin.POST("/usuarios/:id/verificacion", h.Admin.SetVerification)
	admin.GET("/creditos", h.Admin.Loans)
	admin.POST("/creditos", h.Admin.CreateLoan)
	admin.GET("/creditos/export.xlsx", h.Admin.ExportLoans)
	admin.GET("/creditos/:id", h.Admin.LoanDetail)
	admin.POST("/creditos/:id/estado", h.Admin.UpdateStatus)
	admin.POST("/creditos/:id/inversiones", h.Admin.AddInvestment)
	admin.POST("/creditos/:id/pagos", h.Admin.RegisterPayment)
	admin.GET("/tesoreria", h.Admin.Treasury)
	admin.POST("/inversiones/:id/aprobar", h.Admin.Approve)
	admin.POST("/inversiones/:id/rechazar", h.Admin.Reject)

	inv := dash.Group("/inversionista")
	inv.GET("", h.Investor.Portfolio)
	inv.GET("/oportunidades", h.Investor.Opportunities)
	inv.GET("/oportunidades/:id", h.Investor.Opportunity)
	inv.POST("/oportunidades/:id/invertir", h.Investor.Invest)

	owner := dash.Group("/propietario")
	owner.GET("", h.Owner.Home)
	owner.POST("/solicitudes", h.Owner.RequestLoan)
}
