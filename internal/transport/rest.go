package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/model"
)

type restHandler struct {
	bills  Bills
	logger *zap.Logger
}

// NewRESTHandler serves the read-only bill API and the metrics endpoint.
func NewRESTHandler(bills Bills, logger *zap.Logger) (http.Handler, error) {
	h := &restHandler{
		bills:  bills,
		logger: logger.Named("rest"),
	}

	gw := gwruntime.NewServeMux()
	routes := []struct {
		path    string
		handler gwruntime.HandlerFunc
	}{
		{path: "/bills", handler: h.listBills},
		{path: "/bills/{id}", handler: h.getBill},
		{path: "/bills/{id}/chain", handler: h.getChain},
	}
	for _, route := range routes {
		if err := gw.HandlePath(http.MethodGet, route.path, route.handler); err != nil {
			return nil, fmt.Errorf("register route %s: %w", route.path, err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())
	return cors.Default().Handler(mux), nil
}

func (h *restHandler) listBills(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	snapshots, err := h.bills.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []model.Snapshot{}
	}
	h.writeJSON(w, http.StatusOK, snapshots)
}

func (h *restHandler) getBill(w http.ResponseWriter, r *http.Request, params map[string]string) {
	snapshot, err := h.bills.Snapshot(r.Context(), params["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *restHandler) getChain(w http.ResponseWriter, r *http.Request, params map[string]string) {
	c, err := h.bills.Chain(r.Context(), params["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *restHandler) writeError(w http.ResponseWriter, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
	}
	h.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (h *restHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Write response", zap.Error(err))
	}
}
