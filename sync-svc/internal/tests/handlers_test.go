package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "overcooked-menusync/sync-svc/internal/api/http"
	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/metrics"
	"overcooked-menusync/sync-svc/internal/mocks"
	"overcooked-menusync/sync-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type handlerMocks struct {
	reconciler *mocks.ReconcilerInterface
	validator  *mocks.ValidatorInterface
	engines    *mocks.EngineRegistryInterface
}

func serve(t *testing.T, setup func(handlerMocks), method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	m := handlerMocks{
		reconciler: mocks.NewReconcilerInterface(t),
		validator:  mocks.NewValidatorInterface(t),
		engines:    mocks.NewEngineRegistryInterface(t),
	}
	if setup != nil {
		setup(m)
	}
	handler := httpapi.NewHandler(m.reconciler, m.validator, m.engines)
	handler.Metrics = metrics.NewCollector().Handler()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetricsHandlers(t *testing.T) {
	w := serve(t, nil, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sync-svc")

	w = serve(t, nil, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidateHandler(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(handlerMocks)
		wantCode int
	}{
		{
			name: "report",
			setup: func(m handlerMocks) {
				m.validator.On("Validate", mock.Anything, testScope).
					Return(domain.SyncReport{Valid: false, Orphans: []string{"x1"}}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name: "transient store error",
			setup: func(m handlerMocks) {
				m.validator.On("Validate", mock.Anything, testScope).
					Return(domain.SyncReport{}, &domain.TransientError{Op: "list", Err: errors.New("timeout")}).Once()
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "permanent store error is not echoed",
			setup: func(m handlerMocks) {
				m.validator.On("Validate", mock.Anything, testScope).
					Return(domain.SyncReport{}, errors.New("pq: permission denied for table menu_items")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := serve(t, testCase.setup, "GET", "/api/sync/t1/l1/validate", "")

			assert.Equal(t, testCase.wantCode, w.Code)
			assert.NotContains(t, w.Body.String(), "permission denied")
		})
	}
}

func TestCleanupAndFullSyncHandlers(t *testing.T) {
	w := serve(t, func(m handlerMocks) {
		m.reconciler.On("CleanupOrphans", mock.Anything, testScope).Return(2, nil).Once()
	}, "POST", "/api/sync/t1/l1/cleanup", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":2}`, w.Body.String())

	w = serve(t, func(m handlerMocks) {
		m.reconciler.On("FullSync", mock.Anything, testScope).Return(domain.SyncResult{Total: 3, Upserted: 1, Unchanged: 2}, nil).Once()
	}, "POST", "/api/sync/t1/l1/full-sync", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3,"upserted":1,"unchanged":2,"failed":0}`, w.Body.String())
}

func TestEmergencyResetHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(handlerMocks)
		wantCode int
	}{
		{
			name: "confirmed",
			body: `{"confirm":true,"scope":"t1/l1"}`,
			setup: func(m handlerMocks) {
				m.reconciler.On("EmergencyReset", mock.Anything, testScope).Return(domain.SyncResult{Total: 10, Upserted: 10}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing confirmation",
			body:     `{"scope":"t1/l1"}`,
			wantCode: http.StatusPreconditionFailed,
		},
		{
			name:     "scope mismatch",
			body:     `{"confirm":true,"scope":"t1/l2"}`,
			wantCode: http.StatusPreconditionFailed,
		},
		{
			name:     "invalid body",
			body:     `{invalid}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := serve(t, testCase.setup, "POST", "/api/sync/t1/l1/emergency-reset", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestResyncItemHandler(t *testing.T) {
	w := serve(t, func(m handlerMocks) {
		m.reconciler.On("ResyncItem", mock.Anything, testScope, "m1").Return(nil).Once()
	}, "POST", "/api/sync/t1/l1/items/m1/resync", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEngineHandlers(t *testing.T) {
	active := domain.EngineStatus{Active: true, State: "active", MenuItemCount: 3}

	tests := []struct {
		name     string
		method   string
		path     string
		setup    func(handlerMocks)
		wantCode int
	}{
		{
			name:   "start",
			method: "POST",
			path:   "/api/sync/t1/l1/engine/start",
			setup: func(m handlerMocks) {
				m.engines.On("Start", mock.Anything, testScope).Return(nil).Once()
				m.engines.On("Status", testScope).Return(active).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "start twice conflicts",
			method: "POST",
			path:   "/api/sync/t1/l1/engine/start",
			setup: func(m handlerMocks) {
				m.engines.On("Start", mock.Anything, testScope).Return(service.ErrEngineRunning).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "stop",
			method: "POST",
			path:   "/api/sync/t1/l1/engine/stop",
			setup: func(m handlerMocks) {
				m.engines.On("Stop", testScope).Return(nil).Once()
				m.engines.On("Status", testScope).Return(domain.EngineStatus{State: "stopped"}).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "status",
			method: "GET",
			path:   "/api/sync/t1/l1/engine/status",
			setup: func(m handlerMocks) {
				m.engines.On("Status", testScope).Return(active).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "force sync",
			method: "POST",
			path:   "/api/sync/t1/l1/engine/force-sync",
			setup: func(m handlerMocks) {
				m.engines.On("ForceSync", mock.Anything, testScope).Return(domain.ForceSyncResult{Checked: 3, Updated: 1}, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "force sync rejected batch",
			method: "POST",
			path:   "/api/sync/t1/l1/engine/force-sync",
			setup: func(m handlerMocks) {
				m.engines.On("ForceSync", mock.Anything, testScope).Return(domain.ForceSyncResult{}, domain.ErrBatchRejected).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := serve(t, testCase.setup, testCase.method, testCase.path, "")

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestMenuItemHookHandlers(t *testing.T) {
	item := menuItem("m1", "Soup", 5)
	created, _ := json.Marshal(map[string]interface{}{"event": "created", "item": item})
	updated, _ := json.Marshal(map[string]interface{}{"event": "updated", "item": item})
	unscoped, _ := json.Marshal(map[string]interface{}{"event": "created", "item": domain.MenuItem{ID: "m1"}})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(handlerMocks)
		wantCode   int
		wantSynced string
	}{
		{
			name:   "created",
			method: "POST",
			path:   "/api/hooks/menu-items",
			body:   string(created),
			setup: func(m handlerMocks) {
				m.reconciler.On("OnMenuItemCreated", mock.Anything, item).Return(nil).Once()
			},
			wantCode:   http.StatusAccepted,
			wantSynced: `{"synced":true}`,
		},
		{
			name:   "updated sync failure still accepted",
			method: "POST",
			path:   "/api/hooks/menu-items",
			body:   string(updated),
			setup: func(m handlerMocks) {
				m.reconciler.On("OnMenuItemUpdated", mock.Anything, item).Return(errors.New("pos down")).Once()
			},
			wantCode:   http.StatusAccepted,
			wantSynced: `{"synced":false}`,
		},
		{
			name:   "deleted",
			method: "DELETE",
			path:   "/api/hooks/menu-items/t1/l1/m1",
			setup: func(m handlerMocks) {
				m.reconciler.On("OnMenuItemDeleted", mock.Anything, testScope, "m1").Return(nil).Once()
			},
			wantCode:   http.StatusAccepted,
			wantSynced: `{"synced":true}`,
		},
		{
			name:     "unknown event",
			method:   "POST",
			path:     "/api/hooks/menu-items",
			body:     `{"event":"archived","item":{"id":"m1","tenant_id":"t1","location_id":"l1"}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "item without scope",
			method:   "POST",
			path:     "/api/hooks/menu-items",
			body:     string(unscoped),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := serve(t, testCase.setup, testCase.method, testCase.path, testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantSynced != "" {
				assert.JSONEq(t, testCase.wantSynced, w.Body.String())
			}
		})
	}
}
