package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cheflink/backoffice/internal/model"
)

// TableLister is the hall-scoped read the tables screen needs.
// Satisfied by *client.Tables.
type TableLister interface {
	ListByHall(ctx context.Context, hallID int) ([]model.Table, error)
}

// HallNames resolves hall display names for table rows. Satisfied by
// *screen.HallNameCache.
type HallNames interface {
	Names(ctx context.Context, ids []int) map[int]string
}

// TableHandler serves the tables screen. Rows are decorated with their
// hall's display name through one batched lookup instead of a fetch per
// row, and ?hall={id} scopes the list to one hall.
type TableHandler struct {
	crud      *CrudHandler[model.Table, model.TableDraft]
	screen    CrudScreen[model.Table, model.TableDraft]
	byHall    TableLister
	hallNames HallNames
	notify    Notifier
}

func NewTableHandler(scr CrudScreen[model.Table, model.TableDraft], byHall TableLister, hallNames HallNames, notify Notifier) *TableHandler {
	return &TableHandler{
		crud:      NewCrudHandler("table", scr, notify, ValidateTableDraft),
		screen:    scr,
		byHall:    byHall,
		hallNames: hallNames,
		notify:    orNoop(notify),
	}
}

func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.crud.Create)
	r.Put("/{id}", h.crud.Update)
	r.Delete("/{id}", h.crud.Delete)
}

type tableResponse struct {
	model.Table
	HallName string `json:"hallName"`
}

func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		tables []model.Table
		err    error
	)

	if hallParam := r.URL.Query().Get("hall"); hallParam != "" {
		hallID, perr := parseIntParam(hallParam)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid hall ID"})
			return
		}
		tables, err = h.byHall.ListByHall(r.Context(), hallID)
		if err != nil {
			log.Printf("ERROR: list tables by hall: %v", err)
			h.notify.Notify("error", "Error", "could not load tables for hall")
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream service unavailable"})
			return
		}
	} else {
		tables, err = h.screen.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			// Stale snapshot is still served; the failure becomes a toast.
			log.Printf("ERROR: list tables: %v", err)
			h.notify.Notify("error", "Error", "could not load table list")
		}
	}

	ids := make([]int, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.HallID)
	}
	names := h.hallNames.Names(r.Context(), ids)

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = tableResponse{Table: t, HallName: names[t.HallID]}
	}
	writeJSON(w, http.StatusOK, resp)
}
