package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/baile-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/baile-dashboard-api/internal/domain"
	"github.com/vfg2006/baile-dashboard-api/internal/pipeline"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/baile-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/baile-dashboard-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/baile-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var testPresenter = Presenter{Location: time.UTC}

func salesRecord(ordinal int64, responsible string, value int64) domain.SalesRecord {
	amount := decimal.NewFromInt(value)
	return domain.SalesRecord{
		Ordinal:        ordinal,
		Responsible:    responsible,
		Client:         "Cliente",
		TableNumber:    domain.Some(ordinal),
		Amount:         amount,
		AmountReported: true,
		ReceiptDate:    "01/10/2025",
		Classification: pipeline.Classify(decimal.NullDecimal{Decimal: amount, Valid: true}),
	}
}

func testDashboard() *domain.Dashboard {
	records := []domain.SalesRecord{
		salesRecord(1, "Ana", 600),
		salesRecord(2, "Bruno", 0),
		salesRecord(3, "Ana", 1000),
		salesRecord(5, "Carla", 1200),
	}
	dashboard := pipeline.Aggregate(records, domain.DefaultProjectionConfig())
	dashboard.UpdatedAt = time.Date(2025, 10, 1, 20, 30, 0, 0, time.UTC)
	return dashboard
}

func newTestRouter(reporter reporting.Reporter, auth authenticating.Authenticator, crons CronJobServices) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Authentication(auth)...),
		router.WithRoutes(Dashboard(reporter, testPresenter)...),
		router.WithRoutes(CronJobs(crons)...),
	)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestGetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetDashboard(gomock.Any()).Return(testDashboard(), nil)

	rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["expected_total"])
	assert.Equal(t, float64(4), body["record_count"])

	received := body["received_total"].(map[string]any)
	assert.Equal(t, "2800", received["value"])
	assert.Equal(t, "R$ 2.800,00", received["formatted"])

	projection := body["projection"].(map[string]any)
	assert.Equal(t, "R$ 3.800,00", projection["formatted"])

	assert.Equal(t, []any{float64(4)}, body["missing_ordinals"])
	assert.Equal(t, "01/10/2025 20:30", body["updated_at_formatted"])
	assert.Len(t, body["classification_counts"], len(domain.Classifications))
	assert.InDelta(t, 73.68, body["completion_pct"], 1e-9)
}

func TestGetDashboard_Errors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "planilha inacessível",
			err:            domain.NewAcquisitionError("drive", errors.New("timeout")),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   apiErrors.ErrSourceAcquisition,
		},
		{
			name:           "colunas ausentes",
			err:            &domain.SchemaError{Missing: []string{"VALOR"}},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   apiErrors.ErrSourceSchema,
		},
		{
			name:           "planilha sem registros",
			err:            domain.ErrNoRecords,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   apiErrors.ErrSourceEmpty,
		},
		{
			name:           "erro inesperado",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reporter := mocks.NewMockReporter(ctrl)
			reporter.EXPECT().GetDashboard(gomock.Any()).Return(nil, tt.err)

			rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard", "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, body["code"])
		})
	}
}

func TestGetDashboard_SchemaErrorListsMissingColumns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetDashboard(gomock.Any()).Return(nil, &domain.SchemaError{Missing: []string{"VALOR", "DATA_REC"}})

	_, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard", "")

	details := body["details"].(map[string]any)
	assert.Equal(t, []any{"VALOR", "DATA_REC"}, details["missing_columns"])
}

func TestGetResponsibles(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedNames []string
	}{
		{name: "padrão ordena por quantidade", query: "", expectedNames: []string{"Ana", "Bruno", "Carla"}},
		{name: "ordenado por valor", query: "?sort=amount", expectedNames: []string{"Ana", "Carla", "Bruno"}},
		{name: "ordenado por valor com limite", query: "?sort=amount&limit=1", expectedNames: []string{"Ana"}},
		{name: "quantidade com limite", query: "?sort=count&limit=2", expectedNames: []string{"Ana", "Bruno"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reporter := mocks.NewMockReporter(ctrl)
			reporter.EXPECT().GetDashboard(gomock.Any()).Return(testDashboard(), nil)

			rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard/responsibles"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			responsibles := body["responsibles"].([]any)
			names := make([]string, 0, len(responsibles))
			for _, r := range responsibles {
				names = append(names, r.(map[string]any)["name"].(string))
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestGetResponsibles_InvalidParams(t *testing.T) {
	for _, query := range []string{"?sort=nome", "?limit=abc", "?limit=-1"} {
		t.Run(query, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reporter := mocks.NewMockReporter(ctrl)

			rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard/responsibles"+query, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apiErrors.ErrInvalidRequest, body["code"])
		})
	}
}

func TestGetCumulativeAndMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetDashboard(gomock.Any()).Return(testDashboard(), nil).Times(2)
	h := newTestRouter(reporter, nil, CronJobServices{})

	rec, body := doRequest(t, h, http.MethodGet, "/v1/dashboard/cumulative", "")
	require.Equal(t, http.StatusOK, rec.Code)
	points := body["cumulative"].([]any)
	require.Len(t, points, 4)
	last := points[3].(map[string]any)["cumulative"].(map[string]any)
	assert.Equal(t, "R$ 2.800,00", last["formatted"])

	rec, body = doRequest(t, h, http.MethodGet, "/v1/dashboard/missing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{float64(4)}, body["missing_ordinals"])
	assert.Equal(t, float64(1), body["missing_count"])
	assert.Equal(t, false, body["missing_truncated"])
	assert.Equal(t, float64(5), body["expected_total"])
}

func TestGetRecords(t *testing.T) {
	t.Run("filtra pela classificação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		pending := domain.ClassificationPending
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().
			GetRecords(gomock.Any(), &pending).
			Return([]domain.SalesRecord{salesRecord(2, "Bruno", 0)}, nil)

		rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/records?classification=pendente", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(1), body["count"])
		record := body["records"].([]any)[0].(map[string]any)
		assert.Equal(t, "PENDENTE", record["classification"])
		assert.Equal(t, "R$ 0,00", record["amount_formatted"])
		assert.Equal(t, float64(2), record["table_number"])
	})

	t.Run("sem filtro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().GetRecords(gomock.Any(), nil).Return(testDashboard().Records, nil)

		rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/records", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(4), body["count"])
	})

	t.Run("classificação inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reporter := mocks.NewMockReporter(ctrl)

		rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/records?classification=VIP", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, body["code"])
	})
}

func TestRefreshDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Refresh(gomock.Any()).Return(testDashboard(), nil)

	rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodPost, "/v1/dashboard/refresh", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["expected_total"])
}

func TestGetHistory(t *testing.T) {
	snapshot := domain.NewDashboardSnapshot("abc123", testDashboard())
	snapshot.Payload = nil

	tests := []struct {
		name           string
		query          string
		setup          func(reporter *mocks.MockReporter)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:  "lista snapshots",
			query: "?limit=5",
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().ListSnapshots(gomock.Any(), 5).Return([]*domain.DashboardSnapshot{snapshot}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "histórico desabilitado",
			query: "",
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().ListSnapshots(gomock.Any(), 0).Return(nil, reporting.ErrSnapshotsDisabled)
			},
			expectedStatus: http.StatusNotImplemented,
			expectedCode:   apiErrors.ErrFeatureDisabled,
		},
		{
			name:  "erro no banco",
			query: "",
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().ListSnapshots(gomock.Any(), 0).Return(nil, errors.New("conexão recusada"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reporter := mocks.NewMockReporter(ctrl)
			tt.setup(reporter)

			rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard/history"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
				return
			}

			snapshots := body["snapshots"].([]any)
			require.Len(t, snapshots, 1)
			first := snapshots[0].(map[string]any)
			assert.Equal(t, "abc123", first["id"])
			assert.Equal(t, "01/10/2025 20:30", first["created_at_formatted"])
			assert.Nil(t, first["dashboard"])
		})
	}
}

func TestGetSnapshot(t *testing.T) {
	t.Run("retorna o dashboard do snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().GetSnapshot(gomock.Any(), "abc123").Return(domain.NewDashboardSnapshot("abc123", testDashboard()), nil)

		rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard/history/abc123", "")

		require.Equal(t, http.StatusOK, rec.Code)
		dashboard := body["dashboard"].(map[string]any)
		assert.Equal(t, float64(5), dashboard["expected_total"])
	})

	t.Run("snapshot inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().GetSnapshot(gomock.Any(), "nada").Return(nil, domain.ErrNotFound)

		rec, body := doRequest(t, newTestRouter(reporter, nil, CronJobServices{}), http.MethodGet, "/v1/dashboard/history/nada", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, body["code"])
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(auth *authmocks.MockAuthenticator)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "senha correta",
			body: `{"password":"baile2025"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().Login("baile2025").Return("token-jwt", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "senha incorreta",
			body: `{"password":"errada"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().Login("errada").Return("", authenticating.NewAuthError(
					authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:           "corpo inválido",
			body:           `{"password":`,
			setup:          func(auth *authmocks.MockAuthenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name: "erro sem código",
			body: `{"password":"x"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().Login("x").Return("", errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := authmocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			rec, body := doRequest(t, newTestRouter(nil, auth, CronJobServices{}), http.MethodPost, "/v1/login", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
			} else {
				assert.Equal(t, "token-jwt", body["token"])
			}
		})
	}
}

type fakeSyncer struct {
	started bool
	calls   int
}

func (f *fakeSyncer) TriggerManualSync() bool {
	f.calls++
	return f.started
}

func (f *fakeSyncer) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": true}
}

func TestCronJobs(t *testing.T) {
	syncer := &fakeSyncer{started: true}
	h := newTestRouter(nil, nil, CronJobServices{DashboardRefresh: syncer})

	rec, body := doRequest(t, h, http.MethodPost, "/v1/cron/refresh/run", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, true, body["started"])
	assert.Equal(t, 1, syncer.calls)

	syncer.started = false
	_, body = doRequest(t, h, http.MethodPost, "/v1/cron/refresh/run", "")
	assert.Equal(t, false, body["started"])

	rec, body = doRequest(t, h, http.MethodGet, "/v1/cron/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"sync_enabled": true}, body[CronJobTypeRefresh])
}

func TestHealthcheckAndNotFound(t *testing.T) {
	h := newTestRouter(nil, nil, CronJobServices{})

	rec, body := doRequest(t, h, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, body = doRequest(t, h, http.MethodGet, "/v1/nao-existe", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, body["code"])

	rec, _ = doRequest(t, h, http.MethodDelete, "/v1/dashboard", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
