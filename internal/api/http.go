// Package api exposes the solver service over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xtding233/ballistics/internal/service"
)

// maxBody caps request bodies; solve requests are a few hundred bytes.
const maxBody = 1 << 20

type errResp struct {
	Err string `json:"err"`
}

type weaponsResp struct {
	Weapons []string `json:"weapons"`
}

// Handler serves the JSON API.
type Handler struct {
	svc *service.Service
	log *slog.Logger
}

// NewRouter registers every route on a fresh router. When gatherer is
// non-nil its metrics are served on /metrics.
func NewRouter(svc *service.Service, gatherer prometheus.Gatherer, log *slog.Logger) *mux.Router {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{svc: svc, log: log}

	router := mux.NewRouter()
	router.HandleFunc("/v1/solve", h.handleSolve).Methods(http.MethodPost)
	router.HandleFunc("/v1/sample", h.handleSample).Methods(http.MethodPost)
	router.HandleFunc("/v1/reach", h.handleReach).Methods(http.MethodPost)
	router.HandleFunc("/v1/weapons", h.handleWeapons).Methods(http.MethodGet)
	router.HandleFunc("/v1/weapons/{name}", h.handleWeapon).Methods(http.MethodGet)
	router.HandleFunc("/v1/weapons/{name}/variants/{variant}", h.handleWeapon).Methods(http.MethodGet)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	}).Methods(http.MethodGet)
	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return router
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.svc.Solve(r.Context(), req)
	h.reply(w, r, resp, err)
}

func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.svc.Sample(r.Context(), req)
	h.reply(w, r, resp, err)
}

func (h *Handler) handleReach(w http.ResponseWriter, r *http.Request) {
	var req service.ReachRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.svc.Reach(r.Context(), req)
	h.reply(w, r, resp, err)
}

func (h *Handler) handleWeapons(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Weapons(r.Context())
	if names == nil {
		names = []string{}
	}
	h.reply(w, r, weaponsResp{Weapons: names}, err)
}

func (h *Handler) handleWeapon(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	info, err := h.svc.Weapon(r.Context(), vars["name"], vars["variant"])
	h.reply(w, r, info, err)
}

// decode reads a JSON body, rejecting unknown fields and trailing data.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errors.New("trailing data after JSON body")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request, body any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, body)
		return
	}
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errResp{Err: err.Error()})
}

func statusOf(err error) int {
	switch service.Classify(err) {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindCanceled:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		// client went away
		return 499
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
