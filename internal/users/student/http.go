// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package student

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/subgquiz/subg-api/internal/platform/request"
	"github.com/subgquiz/subg-api/internal/platform/respond"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/internal/subscription"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

// Handler implements the back-office HTTP endpoints for student accounts.
// The caller mounts these routes behind the admin guard; nothing here is
// reachable by students.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the back-office endpoints.
//
// # Endpoints
//   - GET    /                      : Paged listing with search and filters.
//   - GET    /{id}                  : Full account inspection.
//   - PUT    /{id}/subscription     : Admin subscription override.
//   - POST   /{id}/deactivate       : Lock the account.
//   - POST   /{id}/reactivate       : Unlock the account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Put("/{id}/subscription", handler.changeSubscription)
	router.Post("/{id}/deactivate", handler.deactivate)
	router.Post("/{id}/reactivate", handler.reactivate)

	return router
}

type subscriptionChangeRequest struct {
	Status string `json:"status"`
	Plan   string `json:"plan"`
	Expiry string `json:"expiry"`
}

/*
List returns a page of student accounts.

GET /api/v1/admin/students?page=&limit=&search=&plan=&status=

Response:
  - 200: Paginated []ListItem
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := ListFilter{
		Search: request.URL.Query().Get("search"),
		Plan:   request.URL.Query().Get("plan"),
		Status: request.URL.Query().Get("status"),
	}

	items, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, meta)
}

/*
Get returns one student account in full.

GET /api/v1/admin/students/{id}

Response:
  - 200: auth.User
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	studentID := requestutil.Param(request, "id")

	user, err := handler.service.Get(request.Context(), studentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangeSubscription applies an admin subscription override.

PUT /api/v1/admin/students/{id}/subscription

Request:
  - Body: subscriptionChangeRequest (Status, Plan, Expiry)

Response:
  - 200: auth.User: Updated account
  - 404: ErrNotFound
  - 422: ErrUnprocessable: Unknown plan
*/
func (handler *Handler) changeSubscription(writer http.ResponseWriter, request *http.Request) {
	studentID := requestutil.Param(request, "id")

	var input subscriptionChangeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("status", input.Status).
		OneOf("status", input.Status, subscription.StatusActive, "expired", "cancelled").
		Required("plan", input.Plan).
		OneOf("plan", input.Plan,
			string(subscription.PlanFree), string(subscription.PlanBasic),
			string(subscription.PlanPremium), string(subscription.PlanPro))

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.ChangeSubscription(request.Context(), studentID, SubscriptionChange{
		Status: input.Status,
		Plan:   input.Plan,
		Expiry: input.Expiry,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Deactivate locks a student account.

POST /api/v1/admin/students/{id}/deactivate

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	studentID := requestutil.Param(request, "id")

	if err := handler.service.Deactivate(request.Context(), studentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Reactivate unlocks a student account.

POST /api/v1/admin/students/{id}/reactivate

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) reactivate(writer http.ResponseWriter, request *http.Request) {
	studentID := requestutil.Param(request, "id")

	if err := handler.service.Reactivate(request.Context(), studentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
