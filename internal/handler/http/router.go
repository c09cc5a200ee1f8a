package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter
type Handlers struct {
	Auth           AuthHandler
	Master         MasterHandler
	Employee       EmployeeHandler
	Attendance     AttendanceHandler
	Logistics      LogisticsHandler
	SocialSecurity SocialSecurityHandler
	Bonus          BonusHandler
	Payroll        PayrollHandler
	Report         ReportHandler
	Health         *HealthHandler

	// Files serves archived workbooks from local storage; nil when archives live in S3
	Files http.Handler
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", h.Health.Healthz)

	can := func(p user.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(p)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)
			r.With(can(user.PermissionUserManage)).Post("/users", h.Auth.CreateUser)

			r.Route("/departments", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Master.ListDepartments)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Master.GetDepartment)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Master.CreateDepartment)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Master.UpdateDepartment)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Master.DeleteDepartment)
			})

			r.Route("/workshops", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Master.ListWorkshops)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Master.GetWorkshop)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Master.CreateWorkshop)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Master.UpdateWorkshop)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Master.DeleteWorkshop)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Employee.ListEmployees)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Employee.GetEmployee)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Employee.CreateEmployee)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Employee.UpdateEmployee)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Employee.DeleteEmployee)
			})

			r.Route("/salary-changes", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Employee.ListSalaryChanges)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Employee.CreateSalaryChange)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Employee.UpdateSalaryChange)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Employee.DeleteSalaryChange)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Attendance.ListAttendances)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Attendance.GetAttendance)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Attendance.CreateAttendance)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Attendance.UpdateAttendance)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Attendance.DeleteAttendance)
			})

			r.Route("/logistics", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Logistics.ListLogistics)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Logistics.GetLogistics)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Logistics.CreateLogistics)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Logistics.UpdateLogistics)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Logistics.DeleteLogistics)
			})

			r.Route("/social-securities", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.SocialSecurity.ListSocialSecurities)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.SocialSecurity.GetSocialSecurity)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.SocialSecurity.CreateSocialSecurity)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.SocialSecurity.UpdateSocialSecurity)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.SocialSecurity.DeleteSocialSecurity)
			})

			r.Route("/bonuses", func(r chi.Router) {
				r.With(can(user.PermissionRecordsView)).Get("/", h.Bonus.ListBonuses)
				r.With(can(user.PermissionRecordsView)).Get("/{id}", h.Bonus.GetBonus)
				r.With(can(user.PermissionRecordsManage)).Post("/", h.Bonus.CreateBonus)
				r.With(can(user.PermissionRecordsManage)).Put("/{id}", h.Bonus.UpdateBonus)
				r.With(can(user.PermissionRecordsDelete)).Delete("/{id}", h.Bonus.DeleteBonus)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.With(can(user.PermissionPayrollView)).Get("/", h.Payroll.ListPayrolls)
				r.With(can(user.PermissionPayrollManage)).Post("/", h.Payroll.CreatePayroll)
				r.With(can(user.PermissionPayrollProcess)).Post("/generate", h.Payroll.GeneratePayrolls)

				r.Route("/{id}", func(r chi.Router) {
					r.With(can(user.PermissionPayrollView)).Get("/", h.Payroll.GetPayroll)
					r.With(can(user.PermissionPayrollManage)).Put("/", h.Payroll.UpdatePayroll)
					r.With(can(user.PermissionPayrollDelete)).Delete("/", h.Payroll.DeletePayroll)
					r.With(can(user.PermissionPayrollProcess)).Post("/confirm", h.Payroll.ConfirmPayroll)
					r.With(can(user.PermissionPayrollProcess)).Post("/pay", h.Payroll.PayPayroll)

					r.Route("/items", func(r chi.Router) {
						r.With(can(user.PermissionPayrollView)).Get("/", h.Payroll.ListItems)
						r.With(can(user.PermissionPayrollManage)).Post("/", h.Payroll.CreateItem)
						r.With(can(user.PermissionPayrollManage)).Put("/{itemId}", h.Payroll.UpdateItem)
						r.With(can(user.PermissionPayrollDelete)).Delete("/{itemId}", h.Payroll.DeleteItem)
					})
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(can(user.PermissionReportsView)).Get("/summary", h.Report.GetPayrollSummary)
				r.With(can(user.PermissionReportsView)).Get("/employees/{id}/history", h.Report.GetEmployeeHistory)
				r.With(can(user.PermissionReportsView)).Get("/payrolls/export", h.Report.ExportPayrolls)
				r.With(can(user.PermissionReportsExport)).Post("/payrolls/export", h.Report.ArchivePayrolls)
			})
		})
	})

	if h.Files != nil {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequirePermission(user.PermissionReportsExport))
			r.Handle("/files/*", http.StripPrefix("/files/", h.Files))
		})
	}

	return r
}
