// AngelaMos | 2026
// handler.go

package employee

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
	r.Post("/employees", h.Signup)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		self := middleware.RequireSelf("email")
		r.With(self).Get("/employee/{email}", h.GetProfile)
		r.With(self).Patch("/employee/{email}", h.UpdateProfile)
		r.With(self).Get("/employee/role/{email}", h.GetRole)
		r.With(self).Get("/company-info/{email}", h.GetCompanyInfo)

		r.With(hrOnly).Get("/employees/not-affiliated", h.ListNotAffiliated)
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if resp.InsertedID == nil {
		core.OK(w, resp)
		return
	}
	core.Created(w, resp)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Profile(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employee")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(e))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	modified, err := h.service.UpdateProfile(r.Context(), chi.URLParam(r, "email"), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "employee")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, map[string]int64{"modifiedCount": modified})
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.RoleInfo(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employee")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, info)
}

func (h *Handler) GetCompanyInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.CompanyInfo(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "company")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, info)
}

func (h *Handler) ListNotAffiliated(w http.ResponseWriter, r *http.Request) {
	employees, total, err := h.service.NotAffiliated(r.Context(), core.ParsePageParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "employees", ToSummaryList(employees), total)
}
