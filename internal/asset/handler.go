// AngelaMos | 2026
// handler.go

package asset

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, hrOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		self := middleware.RequireSelf("email")
		r.Get("/asset/{id}", h.Get)
		r.With(self).Get("/assets/e/{email}", h.ListForEmployee)

		r.Group(func(r chi.Router) {
			r.Use(hrOnly)
			r.Post("/assets", h.Create)
			r.Patch("/asset/{id}", h.Update)
			r.Delete("/asset/{id}", h.Delete)
			r.With(self).Get("/assets/hr/{email}", h.ListForHR)
			r.With(self).Get("/assets/count/{email}", h.Count)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := h.service.Create(r.Context(), middleware.GetEmail(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, map[string]string{"insertedId": id})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "asset")
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "asset")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToResponse(a))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "asset")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	modified, err := h.service.Update(
		r.Context(),
		middleware.GetEmail(r.Context()),
		id,
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, map[string]int64{"modifiedCount": modified})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "asset")
		return
	}

	deleted, err := h.service.Delete(r.Context(), middleware.GetEmail(r.Context()), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, map[string]int64{"deletedCount": deleted})
}

func (h *Handler) ListForHR(w http.ResponseWriter, r *http.Request) {
	assets, total, err := h.service.ListForHR(r.Context(), chi.URLParam(r, "email"), parseListParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "assets", ToResponseList(assets), total)
}

func (h *Handler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	assets, total, err := h.service.ListForEmployee(r.Context(), chi.URLParam(r, "email"), parseListParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "assets", ToResponseList(assets), total)
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Count(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, counts)
}

func parseListParams(r *http.Request) ListParams {
	page := core.ParsePageParams(r)
	q := r.URL.Query()

	return ListParams{
		Filter: q.Get("filter"),
		Sort:   q.Get("sort"),
		Search: q.Get("search"),
		Page:   page.Page,
		Size:   page.Size,
	}
}
