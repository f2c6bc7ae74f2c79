// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
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
	r.Get("/packages", h.Packages)

	r.Group(func(r chi.Router) {
		r.Use(authenticator, hrOnly)
		r.Post("/create-payment-intent", h.CreateIntent)
		r.Post("/payments", h.Confirm)
		r.With(middleware.RequireSelf("email")).Get("/payments/{email}", h.History)
	})
}

func (h *Handler) Packages(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, ToPackageList(h.service.Packages()))
}

func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateIntent(r.Context(), middleware.GetEmail(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Confirm(r.Context(), middleware.GetEmail(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	payments, total, err := h.service.History(r.Context(), chi.URLParam(r, "email"), core.ParsePageParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, "payments", ToResponseList(payments), total)
}
