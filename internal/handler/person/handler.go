package person

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/calebmoore/people-api/internal/events"
	"github.com/calebmoore/people-api/internal/model/person"
	"github.com/calebmoore/people-api/pkg/utils"
)

// Handler serves the person resource over HTTP.
type Handler struct {
	store       person.Store
	broker      *events.Broker
	defaultTake int
}

// New creates the person handler. The broker may be nil when the change
// feed is disabled.
func New(store person.Store, broker *events.Broker, defaultTake int) *Handler {
	if defaultTake < 1 {
		defaultTake = 50
	}
	return &Handler{
		store:       store,
		broker:      broker,
		defaultTake: defaultTake,
	}
}

// RegisterRoutes mounts the person CRUD routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/people", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreateOrUpdate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handlePut)
		r.Patch("/{id}", h.handlePatch)
		r.Delete("/{id}", h.handleDelete)
	})
}

// handleList returns a page of the collection in store order.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "skip must be an integer")
		return
	}

	take, err := queryInt(r, "take", h.defaultTake)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "take must be an integer")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.store.List(skip, take))
}

// handleGet returns a single record by id.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	record, found := h.store.FindByID(id)
	if !found {
		utils.RespondError(w, http.StatusNotFound, "person not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}

// handlePut stores the body under the path id, the URL winning over any id
// in the body. Put cannot fail: an unknown id creates, a known id replaces.
func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload person.Person
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, created := h.store.Put(id, payload)
	h.publish(created, record)

	w.Header().Set("Location", "/api/people/"+strconv.Itoa(record.ID))
	utils.RespondJSON(w, http.StatusCreated, record)
}

// handlePatch swaps an existing record for the body wholesale. Field-level
// merge is deliberately out of scope.
func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload person.Person
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, found := h.store.Replace(id, payload)
	if !found {
		utils.RespondError(w, http.StatusNotFound, "person not found")
		return
	}

	if h.broker != nil {
		h.broker.Publish(events.TypeUpdated, record)
	}
	utils.RespondJSON(w, http.StatusOK, record)
}

// handleDelete removes a record by id.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	removed, found := h.store.Delete(id)
	if !found {
		utils.RespondError(w, http.StatusNotFound, "person not found")
		return
	}

	if h.broker != nil {
		h.broker.Publish(events.TypeDeleted, removed)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCreateOrUpdate upserts the body: a record with an id already in the
// store is replaced in place, anything else gets the next free id.
func (h *Handler) handleCreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	var payload person.Person
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, created := h.store.Upsert(payload)
	h.publish(created, record)

	utils.RespondJSON(w, http.StatusOK, record)
}

// publish emits a created or updated event when the change feed is on.
func (h *Handler) publish(created bool, record person.Person) {
	if h.broker == nil {
		return
	}
	if created {
		h.broker.Publish(events.TypeCreated, record)
	} else {
		h.broker.Publish(events.TypeUpdated, record)
	}
}

// pathID parses the {id} route parameter, answering 400 itself on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "person id must be an integer")
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
