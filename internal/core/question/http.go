// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package question

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/subgquiz/subg-api/internal/platform/request"
	"github.com/subgquiz/subg-api/internal/platform/respond"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

// Handler implements the back-office question endpoints. There is no public
// question surface: students only ever see questions inside an attempt,
// through the quiz package's projection.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the CRUD endpoints; callers wrap them in the
// admin guard.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get("search")}

	if raw := request.URL.Query().Get("category_id"); raw != "" {
		filter.CategoryID, _ = strconv.Atoi(raw)
	}
	if raw := request.URL.Query().Get("level"); raw != "" {
		filter.Level, _ = strconv.Atoi(raw)
	}

	questions, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, questions, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	question, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, question)
}

type questionPayload struct {
	CategoryID   *int     `json:"category_id"`
	Level        *int     `json:"level"`
	Prompt       *string  `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct_index"`
	Explanation  *string  `json:"explanation"`
	IsActive     *bool    `json:"is_active"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input questionPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	create := CreateInput{Options: input.Options, Explanation: input.Explanation}
	if input.CategoryID != nil {
		create.CategoryID = *input.CategoryID
	}
	if input.Level != nil {
		create.Level = *input.Level
	}
	if input.Prompt != nil {
		create.Prompt = *input.Prompt
	}
	if input.CorrectIndex != nil {
		create.CorrectIndex = *input.CorrectIndex
	}

	question, err := handler.service.Create(request.Context(), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, question)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input questionPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	question, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		CategoryID:   input.CategoryID,
		Level:        input.Level,
		Prompt:       input.Prompt,
		Options:      input.Options,
		CorrectIndex: input.CorrectIndex,
		Explanation:  input.Explanation,
		IsActive:     input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, question)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
