// AngelaMos | 2026
// handler.go

package team

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

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
		r.With(self).Get("/my-teams/e/{email}", h.Teammates)

		r.Group(func(r chi.Router) {
			r.Use(hrOnly)
			r.Post("/teams/single", h.AddSingle)
			r.Post("/teams/multiple", h.AddMultiple)
			r.With(self).Get("/my-team/{email}", h.MyTeam)
			r.Delete("/team/{id}", h.Remove)
		})
	})
}

func (h *Handler) AddSingle(w http.ResponseWriter, r *http.Request) {
	var req AddSingleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := h.service.AddSingle(r.Context(), middleware.GetEmail(r.Context()), req.EmployeeID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, map[string]string{"insertedId": id})
}

func (h *Handler) AddMultiple(w http.ResponseWriter, r *http.Request) {
	var req AddMultipleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	n, err := h.service.AddMultiple(r.Context(), middleware.GetEmail(r.Context()), req.EmployeeIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, AddMultipleResponse{Acknowledged: true, InsertedCount: n})
}

func (h *Handler) MyTeam(w http.ResponseWriter, r *http.Request) {
	members, total, err := h.service.MyTeam(r.Context(), chi.URLParam(r, "email"), core.ParsePageParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "employees", ToMemberResponseList(members), total)
}

func (h *Handler) Teammates(w http.ResponseWriter, r *http.Request) {
	members, total, err := h.service.Teammates(r.Context(), chi.URLParam(r, "email"), core.ParsePageParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "myTeams", ToMemberResponseList(members), total)
}

// Remove answers DELETE /team/{id}?empEmail&hrEmail. hrEmail, when given,
// must be the caller.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetEmail(r.Context())
	if hrEmail := r.URL.Query().Get("hrEmail"); hrEmail != "" && !strings.EqualFold(hrEmail, caller) {
		core.Forbidden(w, "forbidden access")
		return
	}

	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "team member")
		return
	}

	deleted, err := h.service.Remove(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]int64{"deletedCount": deleted})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "employee")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
