// Package http is the thin HTTP facade over the drafting engine. Every
// route translates one request into one engine call; all session logic
// lives behind the EngineService interface.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ginzalimited/orderdesk/internal/directory"
	"github.com/ginzalimited/orderdesk/internal/engine"
	"github.com/ginzalimited/orderdesk/internal/order"
)

// EngineService is the slice of the engine the facade needs.
type EngineService interface {
	State() engine.State
	UpdateContext(patch engine.ContextPatch)
	SetCustomerSearch(query string)
	SelectCustomer(c directory.Customer)
	SetItemSearch(query string)
	SelectProduct(p directory.Product)
	UpdateItem(d order.ItemDraft)
	CommitItem() (order.Item, error)
	EditItem(id uuid.UUID) error
	RemoveItem(id uuid.UUID) error
	ClearBatch()
	SalesPersons() []string
	Submit(ctx context.Context) (order.Order, error)
	Reset()
	History(limit int) ([]order.Order, error)
}

type EngineHandler struct {
	service EngineService
}

func NewEngineHandler(service EngineService) *EngineHandler {
	return &EngineHandler{service: service}
}

func (h *EngineHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.handleHealth)
	router.Get("/draft", h.handleGetDraft)
	router.Put("/context", h.handleUpdateContext)
	router.Put("/item", h.handleUpdateItem)
	router.Post("/items", h.handleCommitItem)
	router.Post("/items/{id}/edit", h.handleEditItem)
	router.Delete("/items/{id}", h.handleRemoveItem)
	router.Delete("/items", h.handleClearItems)
	router.Get("/search/customers", h.handleSearchCustomers)
	router.Post("/customers/select", h.handleSelectCustomer)
	router.Get("/search/products", h.handleSearchProducts)
	router.Post("/products/select", h.handleSelectProduct)
	router.Get("/salespersons", h.handleSalesPersons)
	router.Post("/submit", h.handleSubmit)
	router.Post("/reset", h.handleReset)
	router.Get("/history", h.handleHistory)
}

func (h *EngineHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *EngineHandler) handleGetDraft(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.State())
}

func (h *EngineHandler) handleUpdateContext(w http.ResponseWriter, r *http.Request) {
	var patch engine.ContextPatch

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		log.Error().Err(err).Msg("Failed to decode context patch")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	h.service.UpdateContext(patch)
	respondWithJSON(w, http.StatusOK, h.service.State().Context)
}

func (h *EngineHandler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var draft order.ItemDraft

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		log.Error().Err(err).Msg("Failed to decode item draft")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	h.service.UpdateItem(draft)
	respondWithJSON(w, http.StatusOK, h.service.State().CurrentItem)
}

func (h *EngineHandler) handleCommitItem(w http.ResponseWriter, r *http.Request) {
	committed, err := h.service.CommitItem()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to commit item")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusCreated, committed)
}

func (h *EngineHandler) handleEditItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}
	if err := h.service.EditItem(id); err != nil {
		log.Warn().Err(err).Str("item_id", id.String()).Msg("Failed to begin item edit")
		respondWithError(w, mapErrorToStatusCode(err), "Item not found")
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.State().CurrentItem)
}

func (h *EngineHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveItem(id); err != nil {
		log.Warn().Err(err).Str("item_id", id.String()).Msg("Failed to remove item")
		respondWithError(w, mapErrorToStatusCode(err), "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EngineHandler) handleClearItems(w http.ResponseWriter, _ *http.Request) {
	h.service.ClearBatch()
	w.WriteHeader(http.StatusNoContent)
}

func (h *EngineHandler) handleSearchCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	h.service.SetCustomerSearch(query)
	// Suggestions arrive after the debounce window; the client polls
	// the draft state for them.
	respondWithJSON(w, http.StatusAccepted, map[string]string{"query": query})
}

func (h *EngineHandler) handleSelectCustomer(w http.ResponseWriter, r *http.Request) {
	var customer directory.Customer

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&customer); err != nil {
		log.Error().Err(err).Msg("Failed to decode customer selection")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	h.service.SelectCustomer(customer)
	respondWithJSON(w, http.StatusOK, h.service.State().Context)
}

func (h *EngineHandler) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	h.service.SetItemSearch(query)
	respondWithJSON(w, http.StatusAccepted, map[string]string{"query": query})
}

func (h *EngineHandler) handleSelectProduct(w http.ResponseWriter, r *http.Request) {
	var product directory.Product

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&product); err != nil {
		log.Error().Err(err).Msg("Failed to decode product selection")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	h.service.SelectProduct(product)
	respondWithJSON(w, http.StatusOK, h.service.State().CurrentItem)
}

func (h *EngineHandler) handleSalesPersons(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{"sales_persons": h.service.SalesPersons()})
}

func (h *EngineHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	submitted, err := h.service.Submit(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to submit order")

		var clientMessage string
		switch {
		case errors.Is(err, engine.ErrMandatoryDataMissing):
			clientMessage = "Customer, branch, sales person and at least one item are required"
		case errors.Is(err, engine.ErrSubmissionInFlight):
			clientMessage = "A submission is already in progress"
		default:
			clientMessage = "Failed to submit order"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}
	respondWithJSON(w, http.StatusOK, submitted)
}

func (h *EngineHandler) handleReset(w http.ResponseWriter, _ *http.Request) {
	h.service.Reset()
	respondWithJSON(w, http.StatusOK, h.service.State())
}

func (h *EngineHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	orders, err := h.service.History(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list order history")
		respondWithError(w, http.StatusInternalServerError, "Failed to list order history")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func parseItemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.FromString(idParam)
	if err != nil {
		log.Warn().Err(err).Str("item_id", idParam).Msg("Failed to parse id parameter from URL")
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}
