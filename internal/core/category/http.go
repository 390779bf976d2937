package category

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/subgquiz/subg-api/internal/platform/request"
	"github.com/subgquiz/subg-api/internal/platform/respond"
	"github.com/subgquiz/subg-api/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public, read-only category endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)
	router.Get("/by-slug/{slug}", handler.getCategoryBySlug)
}

// RegisterAdminRoutes mounts the back-office CRUD endpoints. The caller is
// responsible for wrapping them in the admin guard.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listAllCategories)
	router.Post("/", handler.createCategory)
	router.Put("/{id}", handler.updateCategory)
	router.Delete("/{id}", handler.deleteCategory)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context(), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listAllCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context(), true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, validate.ErrInvalidID)
		return
	}

	category, err := handler.service.GetCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) getCategoryBySlug(writer http.ResponseWriter, request *http.Request) {
	slug := chi.URLParam(request, "slug")

	category, err := handler.service.GetCategoryBySlug(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

type categoryPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	create := CreateInput{Description: input.Description, IconURL: input.IconURL}
	if input.Name != nil {
		create.Name = *input.Name
	}
	if input.SortOrder != nil {
		create.SortOrder = *input.SortOrder
	}

	category, err := handler.service.CreateCategory(request.Context(), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, validate.ErrInvalidID)
		return
	}

	var input categoryPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), categoryID, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		IconURL:     input.IconURL,
		SortOrder:   input.SortOrder,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, validate.ErrInvalidID)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
