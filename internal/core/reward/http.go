// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package reward

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/subgquiz/subg-api/internal/platform/request"
	"github.com/subgquiz/subg-api/internal/platform/respond"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated reward surface.
//
// # Endpoints
//   - GET / : Top leaderboard positions
//   - GET /me : The caller's balance, rank, and ledger history
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.leaderboard)
	router.Get("/me", handler.standing)
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	limit := 10
	if raw := request.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	rows, err := handler.service.Leaderboard(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rows)
}

func (handler *Handler) standing(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	row, err := handler.service.Standing(request.Context(), studentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, meta, err := handler.service.History(request.Context(), studentID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"standing": row,
		"history":  entries,
		"meta":     meta,
	})
}
