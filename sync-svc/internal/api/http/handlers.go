package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Reconciler service.ReconcilerInterface
	Validator  service.ValidatorInterface
	Engines    service.EngineRegistryInterface
	Metrics    http.Handler
	Costs      http.Handler
}

func NewHandler(reconciler service.ReconcilerInterface, validator service.ValidatorInterface, engines service.EngineRegistryInterface) *Handler {
	return &Handler{
		Reconciler: reconciler,
		Validator:  validator,
		Engines:    engines,
	}
}

type hookRequest struct {
	Event string          `json:"event"`
	Item  domain.MenuItem `json:"item"`
}

type resetRequest struct {
	Confirm bool   `json:"confirm"`
	Scope   string `json:"scope"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods("GET")
	}
	if h.Costs != nil {
		r.Handle("/ws/costs", h.Costs).Methods("GET")
	}

	s := r.PathPrefix("/api/sync/{tenantId}/{locationId}").Subrouter()
	s.HandleFunc("/validate", h.validate).Methods("GET")
	s.HandleFunc("/cleanup", h.cleanup).Methods("POST")
	s.HandleFunc("/full-sync", h.fullSync).Methods("POST")
	s.HandleFunc("/emergency-reset", h.emergencyReset).Methods("POST")
	s.HandleFunc("/items/{id}/resync", h.resyncItem).Methods("POST")
	s.HandleFunc("/engine/start", h.startEngine).Methods("POST")
	s.HandleFunc("/engine/stop", h.stopEngine).Methods("POST")
	s.HandleFunc("/engine/status", h.engineStatus).Methods("GET")
	s.HandleFunc("/engine/force-sync", h.forceSync).Methods("POST")

	r.HandleFunc("/api/hooks/menu-items", h.menuItemWritten).Methods("POST")
	r.HandleFunc("/api/hooks/menu-items/{tenantId}/{locationId}/{id}", h.menuItemDeleted).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "sync-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	report, err := h.Validator.Validate(r.Context(), scope)
	if err != nil {
		writeError(w, "validate", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	removed, err := h.Reconciler.CleanupOrphans(r.Context(), scope)
	if err != nil {
		writeError(w, "cleanup", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *Handler) fullSync(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	result, err := h.Reconciler.FullSync(r.Context(), scope)
	if err != nil {
		writeError(w, "full sync", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) emergencyReset(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Confirm || req.Scope != scope.String() {
		writeError(w, "emergency reset", scope, service.ErrResetNotConfirmed)
		return
	}

	log.Printf("Emergency reset requested for %s", scope)
	result, err := h.Reconciler.EmergencyReset(r.Context(), scope)
	if err != nil {
		writeError(w, "emergency reset", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) resyncItem(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.Reconciler.ResyncItem(r.Context(), scope, id); err != nil {
		writeError(w, "resync "+id, scope, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "synced"})
}

func (h *Handler) startEngine(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	if err := h.Engines.Start(r.Context(), scope); err != nil {
		writeError(w, "start engine", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Engines.Status(scope))
}

func (h *Handler) stopEngine(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	if err := h.Engines.Stop(scope); err != nil {
		writeError(w, "stop engine", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Engines.Status(scope))
}

func (h *Handler) engineStatus(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Engines.Status(scope))
}

func (h *Handler) forceSync(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	result, err := h.Engines.ForceSync(r.Context(), scope)
	if err != nil {
		writeError(w, "force sync", scope, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// menuItemWritten is called by the menu editor after its own write succeeded,
// so sync failures are reported in the body and never as an error status.
func (h *Handler) menuItemWritten(w http.ResponseWriter, r *http.Request) {
	var req hookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Item.Scope().Valid() || req.Item.ID == "" {
		http.Error(w, "item id, tenant_id and location_id are required", http.StatusBadRequest)
		return
	}

	var err error
	switch req.Event {
	case "created":
		err = h.Reconciler.OnMenuItemCreated(r.Context(), req.Item)
	case "updated":
		err = h.Reconciler.OnMenuItemUpdated(r.Context(), req.Item)
	default:
		http.Error(w, "event must be created or updated", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"synced": err == nil})
}

func (h *Handler) menuItemDeleted(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFromPath(w, r)
	if !ok {
		return
	}
	err := h.Reconciler.OnMenuItemDeleted(r.Context(), scope, mux.Vars(r)["id"])
	writeJSON(w, http.StatusAccepted, map[string]bool{"synced": err == nil})
}

func scopeFromPath(w http.ResponseWriter, r *http.Request) (domain.Scope, bool) {
	vars := mux.Vars(r)
	scope := domain.Scope{TenantID: vars["tenantId"], LocationID: vars["locationId"]}
	if !scope.Valid() {
		http.Error(w, service.ErrInvalidScope.Error(), http.StatusBadRequest)
		return scope, false
	}
	return scope, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError logs the full error and answers with a generic message so store
// details never reach the client.
func writeError(w http.ResponseWriter, op string, scope domain.Scope, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScope):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrResetNotConfirmed):
		http.Error(w, err.Error(), http.StatusPreconditionFailed)
	case errors.Is(err, service.ErrEngineRunning), errors.Is(err, service.ErrEngineStopped):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case domain.IsTransient(err):
		log.Printf("Error in %s for %s: %v", op, scope, err)
		http.Error(w, "store temporarily unavailable", http.StatusServiceUnavailable)
	default:
		log.Printf("Error in %s for %s: %v", op, scope, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
