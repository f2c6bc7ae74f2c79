// AngelaMos | 2026
// handler.go

package request

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	authenticator, hrOnly, employeeOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		self := middleware.RequireSelf("email")
		r.With(employeeOnly).Post("/asset-requests", h.Create)
		r.With(self).Get("/assets/e/monthly-request/{email}", h.Monthly)
		r.With(self).Get("/asset-requests/e/{email}", h.ForRequester)
		r.With(hrOnly, self).Get("/asset-requests/hr/{email}", h.ForHR)
		r.Patch("/asset-request/{id}/status", h.UpdateStatus)
		r.Get("/asset-request/{id}/pdf", h.Slip)
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

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "asset request")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	modified, err := h.service.UpdateStatus(
		r.Context(),
		middleware.GetEmail(r.Context()),
		id,
		req.Status,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, map[string]int64{"modifiedCount": modified})
}

func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	details, total, err := h.service.Monthly(r.Context(), chi.URLParam(r, "email"), core.ParsePageParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "myAssets", ToResponseList(details), total)
}

func (h *Handler) ForRequester(w http.ResponseWriter, r *http.Request) {
	details, total, err := h.service.ForRequester(r.Context(), chi.URLParam(r, "email"), parseQuery(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "requests", ToResponseList(details), total)
}

func (h *Handler) ForHR(w http.ResponseWriter, r *http.Request) {
	details, total, err := h.service.ForHR(r.Context(), chi.URLParam(r, "email"), parseQuery(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "requests", ToResponseList(details), total)
}

func (h *Handler) Slip(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "asset request")
		return
	}

	doc, err := h.service.Slip(r.Context(), middleware.GetEmail(r.Context()), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="asset-request-`+id+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc) //nolint:errcheck // client went away
}

func parseQuery(r *http.Request) Query {
	page := core.ParsePageParams(r)
	q := r.URL.Query()

	status := q.Get("status")
	switch status {
	case StatusPending, StatusApprove, StatusReject, StatusReturn, StatusCancel:
	default:
		status = ""
	}

	return Query{
		Search: q.Get("search"),
		Status: status,
		Page:   page.Page,
		Size:   page.Size,
	}
}
