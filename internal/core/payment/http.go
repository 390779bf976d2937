// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/subgquiz/subg-api/internal/platform/request"
	"github.com/subgquiz/subg-api/internal/platform/respond"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated billing surface.
//
// # Endpoints
//   - POST / : Record a settled charge and activate the purchased plan
//   - GET  / : The caller's payment history
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.record)
	router.Get("/", handler.history)
}

// RegisterAdminRoutes mounts the back-office ledger listing.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listAll)
}

type recordPayload struct {
	Plan        *string `json:"plan"`
	AmountCents *int    `json:"amount_cents"`
	Currency    *string `json:"currency"`
	Provider    *string `json:"provider"`
	ProviderRef *string `json:"provider_ref"`
}

func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	record := RecordInput{StudentID: studentID}
	if input.Plan != nil {
		record.Plan = *input.Plan
	}
	if input.AmountCents != nil {
		record.AmountCents = *input.AmountCents
	}
	if input.Currency != nil {
		record.Currency = *input.Currency
	}
	if input.Provider != nil {
		record.Provider = *input.Provider
	}
	if input.ProviderRef != nil {
		record.ProviderRef = *input.ProviderRef
	}

	payment, err := handler.service.Record(request.Context(), record)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, payment)
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, meta, err := handler.service.History(request.Context(), studentID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, payments, meta)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	payments, meta, err := handler.service.ListAll(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, payments, meta)
}
