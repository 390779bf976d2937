// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package quiz

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/subgquiz/subg-api/internal/platform/request"
	"github.com/subgquiz/subg-api/internal/platform/respond"
	"github.com/subgquiz/subg-api/internal/platform/validate"
	"github.com/subgquiz/subg-api/pkg/pagination"
)

// Handler implements the quiz catalog and attempt endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterStudentRoutes mounts the authenticated student surface: the
// plan-filtered catalog and the attempt lifecycle. Callers wrap these in the
// auth middleware.
//
// # Endpoints
//   - GET  /                        : Catalog visible under the student's plan
//   - GET  /{id}                    : One quiz
//   - GET  /by-slug/{slug}          : One quiz, by slug
//   - POST /{id}/attempts           : Start (or resume) an attempt
//   - GET  /attempts                : Attempt history
//   - GET  /attempts/{attemptID}    : Attempt state and remaining time
//   - POST /attempts/{attemptID}/answers  : Submit one answer
//   - POST /attempts/{attemptID}/complete : Finalize and reveal grading
func (handler *Handler) RegisterStudentRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/attempts", handler.history)
	router.Get("/attempts/{attemptID}", handler.getAttempt)
	router.Post("/attempts/{attemptID}/answers", handler.submitAnswer)
	router.Post("/attempts/{attemptID}/complete", handler.completeAttempt)
	router.Get("/by-slug/{slug}", handler.getBySlug)
	router.Get("/{id}", handler.get)
	router.Post("/{id}/attempts", handler.startAttempt)
}

// RegisterAdminRoutes mounts the back-office CRUD surface; callers wrap it
// in the admin guard.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listAll)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

// # Catalog

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	quizzes, meta, err := handler.service.ListForStudent(
		request.Context(), studentID, categoryIDQuery(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, quizzes, meta)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	quizzes, meta, err := handler.service.ListAll(
		request.Context(), categoryIDQuery(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, quizzes, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	quiz, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quiz)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	quiz, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quiz)
}

type quizPayload struct {
	CategoryID       *int    `json:"category_id"`
	Title            *string `json:"title"`
	Level            *int    `json:"level"`
	QuestionCount    *int    `json:"question_count"`
	TimeLimitSeconds *int    `json:"time_limit_seconds"`
	IsActive         *bool   `json:"is_active"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input quizPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	create := CreateInput{}
	if input.CategoryID != nil {
		create.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		create.Title = *input.Title
	}
	if input.Level != nil {
		create.Level = *input.Level
	}
	if input.QuestionCount != nil {
		create.QuestionCount = *input.QuestionCount
	}
	if input.TimeLimitSeconds != nil {
		create.TimeLimitSeconds = *input.TimeLimitSeconds
	}

	quiz, err := handler.service.Create(request.Context(), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, quiz)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input quizPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	quiz, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		CategoryID:       input.CategoryID,
		Title:            input.Title,
		Level:            input.Level,
		QuestionCount:    input.QuestionCount,
		TimeLimitSeconds: input.TimeLimitSeconds,
		IsActive:         input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quiz)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Attempts

func (handler *Handler) startAttempt(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	started, err := handler.service.StartAttempt(request.Context(), studentID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, started)
}

type answerPayload struct {
	QuestionID    *string `json:"question_id"`
	SelectedIndex *int    `json:"selected_index"`
}

func (handler *Handler) submitAnswer(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input answerPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Custom("question_id", input.QuestionID == nil, "This field is required").
		Custom("selected_index", input.SelectedIndex == nil, "This field is required")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.SubmitAnswer(
		request.Context(), studentID,
		requestutil.Param(request, "attemptID"),
		*input.QuestionID, *input.SelectedIndex)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) completeAttempt(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CompleteAttempt(
		request.Context(), studentID, requestutil.Param(request, "attemptID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) getAttempt(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	attempt, remainingSeconds, err := handler.service.GetAttempt(
		request.Context(), studentID, requestutil.Param(request, "attemptID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"attempt":           attempt,
		"remaining_seconds": remainingSeconds,
	})
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	studentID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	attempts, meta, err := handler.service.History(request.Context(), studentID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, attempts, meta)
}

func categoryIDQuery(request *http.Request) int {
	raw := request.URL.Query().Get("category_id")
	if raw == "" {
		return 0
	}
	id, _ := strconv.Atoi(raw)
	return id
}
