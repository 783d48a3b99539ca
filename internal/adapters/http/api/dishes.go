package api

import (
	"net/http"

	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/logger"
)

// createRequest keeps presence so missing fields can be told apart from
// zero values.
type createRequest struct {
	Name   model.Optional[string]  `json:"name"`
	Precio model.Optional[float64] `json:"precio"`
}

func (c createRequest) input() (model.CreationInput, error) {
	var ve model.ValidationError
	name, ok := c.Name.Get()
	if !ok {
		ve.Fields = append(ve.Fields, model.FieldError{Field: "name", Message: "field required"})
	}
	precio, ok := c.Precio.Get()
	if !ok {
		ve.Fields = append(ve.Fields, model.FieldError{Field: "precio", Message: "field required"})
	}
	if len(ve.Fields) > 0 {
		return model.CreationInput{}, &ve
	}
	return model.CreationInput{Name: name, Precio: precio}, nil
}

// DishesHandler serves the /platos resource.
type DishesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewDishesHandler creates a new dishes handler.
func NewDishesHandler(deps Dependencies, log logger.Logger) *DishesHandler {
	return &DishesHandler{deps: deps, logger: log}
}

// HandleCreate handles POST /platos/.
func (h *DishesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	d, err := h.deps.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// HandleList handles GET /platos/.
func (h *DishesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.deps.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if dishes == nil {
		dishes = []model.Dish{}
	}
	writeJSON(w, http.StatusOK, dishes)
}

// HandleGet handles GET /platos/{id}.
func (h *DishesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	d, err := h.deps.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleUpdate handles PUT and PATCH /platos/{id}. Both apply only the
// fields present in the body.
func (h *DishesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var in model.UpdateInput
	if err := decodeBody(w, r, &in); err != nil {
		writeDomainError(w, err)
		return
	}
	d, err := h.deps.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleDelete handles DELETE /platos/{id}.
func (h *DishesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.deps.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStats handles GET /platos/stats/summary.
func (h *DishesHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *DishesHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := statusFor(err); status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.Error(err),
		)
	}
	writeDomainError(w, err)
}
