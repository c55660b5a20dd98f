package handler

import (
	"net/http"

	"github.com/nexumapp/nexum-api/internal/api/handler/router"
	"github.com/nexumapp/nexum-api/internal/integrations"
	"github.com/nexumapp/nexum-api/internal/usecases/administrating"
	"github.com/nexumapp/nexum-api/internal/usecases/authenticating"
	"github.com/nexumapp/nexum-api/internal/usecases/financialplanning"
	"github.com/nexumapp/nexum-api/internal/usecases/noting"
	"github.com/nexumapp/nexum-api/internal/usecases/roitracking"
	"github.com/nexumapp/nexum-api/internal/usecases/tasking"
	"github.com/nexumapp/nexum-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/subscribe",
			Method:      http.MethodPost,
			Handler:     Subscribe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
	}
}

func ROITracking(service roitracking.ROITracker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/roi",
			Method:      http.MethodGet,
			Handler:     GetROIData(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/roi/entries",
			Method:      http.MethodPost,
			Handler:     AddROIEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/roi/entries",
			Method:      http.MethodGet,
			Handler:     FilterROIEntries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
	}
}

func FinancialPlanning(service financialplanning.FinancialPlanner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/financial",
			Method:      http.MethodGet,
			Handler:     GetFinancialData(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/financial/cash-balance",
			Method:      http.MethodPut,
			Handler:     UpdateCashBalance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/financial/debts/fixed",
			Method:      http.MethodPost,
			Handler:     AddFixedDebt(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/financial/debts/variable",
			Method:      http.MethodPost,
			Handler:     AddVariableDebt(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/financial/debts/:id/payment",
			Method:      http.MethodPatch,
			Handler:     ToggleDebtPayment(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/financial/debts/:id",
			Method:      http.MethodDelete,
			Handler:     RemoveDebt(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
	}
}

func Admin(service administrating.AdminViewer, authService authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/overview",
			Method:      http.MethodGet,
			Handler:     GetAdminOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/overview/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshAdminOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(authService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/admin-refresh/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Notes(service noting.Noter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/notes",
			Method:      http.MethodGet,
			Handler:     ListNotes(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/notes",
			Method:      http.MethodPost,
			Handler:     CreateNote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/notes/:id",
			Method:      http.MethodPut,
			Handler:     UpdateNote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/notes/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteNote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
	}
}

func Tasks(service tasking.Tasker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tasks",
			Method:      http.MethodGet,
			Handler:     ListTasks(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/tasks",
			Method:      http.MethodPost,
			Handler:     CreateTask(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/tasks/:id/completion",
			Method:      http.MethodPatch,
			Handler:     ToggleTask(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/tasks/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTask(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
	}
}

func Integrations(service integrations.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations/webhook/test",
			Method:      http.MethodPost,
			Handler:     TestWebhook(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
		{
			Path:        "/v1/integrations/api/test",
			Method:      http.MethodPost,
			Handler:     TestAPI(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllUsers()},
		},
	}
}
