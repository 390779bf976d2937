package article

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

// RegisterRoutes mounts the public read surface: published articles only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPublished)
	router.Get("/by-slug/{slug}", handler.getBySlug)
}

// RegisterAdminRoutes mounts the back-office surface, drafts included.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listAll)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Post("/{id}/publish", handler.publish)
	router.Post("/{id}/unpublish", handler.unpublish)
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	articles, meta, err := handler.service.ListPublished(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, articles, meta)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	articles, meta, err := handler.service.ListAll(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, articles, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.GetPublishedBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

type articlePayload struct {
	Title    *string `json:"title"`
	Summary  *string `json:"summary"`
	Body     *string `json:"body"`
	CoverURL *string `json:"cover_url"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input articlePayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	create := CreateInput{AuthorID: authorID, Summary: input.Summary, CoverURL: input.CoverURL}
	if input.Title != nil {
		create.Title = *input.Title
	}
	if input.Body != nil {
		create.Body = *input.Body
	}

	article, err := handler.service.Create(request.Context(), create)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, article)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input articlePayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	article, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		Title:    input.Title,
		Summary:  input.Summary,
		Body:     input.Body,
		CoverURL: input.CoverURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Publish(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Unpublish(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
