package handler

import (
	"net/http"

	"github.com/vfg2006/baile-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting"
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
	}
}

func Dashboard(service reporting.Reporter, presenter Presenter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service, presenter),
		},
		{
			Path:    "/v1/dashboard/responsibles",
			Method:  http.MethodGet,
			Handler: GetResponsibles(service, presenter),
		},
		{
			Path:    "/v1/dashboard/cumulative",
			Method:  http.MethodGet,
			Handler: GetCumulative(service, presenter),
		},
		{
			Path:    "/v1/dashboard/missing",
			Method:  http.MethodGet,
			Handler: GetMissing(service),
		},
		{
			Path:    "/v1/dashboard/refresh",
			Method:  http.MethodPost,
			Handler: RefreshDashboard(service, presenter),
		},
		{
			Path:    "/v1/dashboard/history",
			Method:  http.MethodGet,
			Handler: GetHistory(service, presenter),
		},
		{
			Path:    "/v1/dashboard/history/:id",
			Method:  http.MethodGet,
			Handler: GetSnapshot(service, presenter),
		},
		{
			Path:    "/v1/records",
			Method:  http.MethodGet,
			Handler: GetRecords(service, presenter),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/refresh/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services, CronJobTypeRefresh),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
