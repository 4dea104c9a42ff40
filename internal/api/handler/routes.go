package handler

import (
	"net/http"

	"github.com/vfg2006/budget-control-api/internal/api/handler/router"
	"github.com/vfg2006/budget-control-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-control-api/internal/usecases/dayparting"
	"github.com/vfg2006/budget-control-api/internal/usecases/spending"
	"github.com/vfg2006/budget-control-api/pkg/middleware"
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

// Spends retorna as rotas de registro de gastos. Rotas de escrita exigem o
// bearer token de operação.
func Spends(service spending.SpendingService, authSecret string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/spends",
			Method:      http.MethodPost,
			Handler:     RecordSpend(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
	}
}

func Budgets(service budgeting.BudgetingService, authSecret string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/budgets/summary",
			Method:  http.MethodGet,
			Handler: GetBudgetSummary(service),
		},
		{
			Path:        "/v1/budgets/check",
			Method:      http.MethodPost,
			Handler:     CheckAllBudgets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
		{
			Path:        "/v1/brands/:id/budget/check",
			Method:      http.MethodPost,
			Handler:     CheckBrandBudget(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
		{
			Path:        "/v1/brands/:id/reset",
			Method:      http.MethodPost,
			Handler:     ForceBrandReset(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
	}
}

func Dayparting(service dayparting.DaypartingService, authSecret string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dayparting/summary",
			Method:  http.MethodGet,
			Handler: GetDaypartingSummary(service),
		},
		{
			Path:        "/v1/dayparting/update",
			Method:      http.MethodPost,
			Handler:     UpdateAllCampaignsDayparting(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
		{
			Path:        "/v1/campaigns/:id/dayparting/update",
			Method:      http.MethodPost,
			Handler:     UpdateCampaignDayparting(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
		{
			Path:    "/v1/schedules/validate",
			Method:  http.MethodPost,
			Handler: ValidateSchedule(service),
		},
		{
			Path:        "/v1/schedules",
			Method:      http.MethodPost,
			Handler:     CreateSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
	}
}

func CronJobs(services CronJobServices, authSecret string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authSecret)},
		},
	}
}
