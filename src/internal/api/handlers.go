package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/turris-cz/turrishw/src/internal/domain"
	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/hw"
	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/service"
)

// Handler manages all API endpoints and dependencies.
type Handler struct {
	deps       *domain.AppDependencies
	interfaces *service.InterfaceService
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(deps *domain.AppDependencies) *Handler {
	return &Handler{
		deps:       deps,
		interfaces: service.NewInterfaceService(deps),
	}
}

// GetInterfaces returns the classified interfaces of the board.
// GET /api/v1/interfaces?type=eth&type=wifi
//
// Every request enumerates the hardware again. Without a type parameter all
// interfaces are returned; a present but empty type selects nothing.
func (h *Handler) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	filter := parseTypeFilter(r)
	for _, t := range filter.Types() {
		if !knownTypes[t] {
			WriteError(w, http.StatusBadRequest, NewAPIError(ErrCodeInvalidRequest, "unknown interface type "+t).
				WithDetails(map[string]interface{}{"allowed": []string{hw.TypeEth, hw.TypeWifi, hw.TypeWWAN}}))
			return
		}
	}

	result, err := h.interfaces.GetInterfaces(filter)
	if err != nil {
		log.Errorf("Failed to enumerate interfaces: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSONData(w, result)
}

// GetInterface returns a single interface, keyed by its name like in the
// full listing.
// GET /api/v1/interfaces/{name}
func (h *Handler) GetInterface(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	result, err := h.interfaces.GetInterfaces(nil)
	if err != nil {
		log.Errorf("Failed to enumerate interfaces: %v", err)
		writeServiceError(w, err)
		return
	}
	iface, ok := result.Get(name)
	if !ok {
		WriteNotFound(w, "interface "+name)
		return
	}
	writeJSONData(w, hw.NewResult([]hw.Interface{iface}))
}

// GetBoard returns the detected board.
// GET /api/v1/board
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	info, err := h.interfaces.GetBoard()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONData(w, info)
}

var knownTypes = map[string]bool{hw.TypeEth: true, hw.TypeWifi: true, hw.TypeWWAN: true}

// parseTypeFilter builds the filter from all "type" query values. Each value
// may itself be a comma separated list.
func parseTypeFilter(r *http.Request) *hw.TypeFilter {
	values, ok := r.URL.Query()["type"]
	if !ok {
		return nil
	}
	var types []string
	for _, v := range values {
		types = append(types, strings.Split(v, ",")...)
	}
	return hw.NewTypeFilter(types...)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.HasCode(err, errors.ErrCodeEnvironment) {
		WriteError(w, http.StatusServiceUnavailable, NewAPIError(ErrCodeEnvironment, err.Error()))
		return
	}
	WriteInternalError(w, err.Error())
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(DataResponse{Data: data}); err != nil {
		log.Warnf("Failed to write response: %v", err)
	}
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}
