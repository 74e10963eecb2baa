package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fatetable/internal/api/response"
	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/services/table"
)

// TableHandler serves read-only table snapshots. All changes go through the
// websocket endpoint.
type TableHandler struct {
	processor table.ProcessorInterface
}

// NewTableHandler creates a new table handler
func NewTableHandler(processor table.ProcessorInterface) *TableHandler {
	return &TableHandler{processor: processor}
}

// Get handles GET /api/v1/tables/{id}
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		WriteError(w, NewInvalidRequestError("table id is required"))
		return
	}

	t, err := h.processor.GetTable(r.Context(), model.TableID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}
