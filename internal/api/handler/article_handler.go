package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/core/domain"
	"github.com/securecontent/workspace-api/internal/core/ports"
)

// uploadStore is the slice of the image store the handler needs. Save
// returns the stored file name; Remove is best-effort cleanup.
type uploadStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string)
}

// ArticleHandler handles HTTP requests for article operations, including
// the multipart image side-channel on create and update.
type ArticleHandler struct {
	service ports.ArticleService
	uploads uploadStore
	log     zerolog.Logger
}

func NewArticleHandler(service ports.ArticleService, uploads uploadStore, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{service: service, uploads: uploads, log: log}
}

// List handles GET /articles.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Param        page    query     string  false  "1-based page number"
// @Param        limit   query     string  false  "page size, capped at the configured maximum"
// @Param        status  query     string  false  "filter by status (DRAFT or PUBLISHED)"
// @Param        search  query     string  false  "substring match on title or content"
// @Success      200     {object}  envelope{data=ports.ArticleList}
// @Failure      400     {object}  map[string]any
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	var req listArticlesRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.KindValidation, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Validated digit strings; absent values become zero and take the
	// service-side defaults.
	page, _ := strconv.Atoi(req.Page)
	limit, _ := strconv.Atoi(req.Limit)

	result, err := h.service.List(c.Request().Context(), ports.ListArticlesInput{
		Page:   page,
		Limit:  limit,
		Status: req.Status,
		Search: req.Search,
	})
	if err != nil {
		return err
	}

	return respondData(c, http.StatusOK, result)
}

// Get handles GET /articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "article id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := h.articleID(c)
	if err != nil {
		return err
	}

	article, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return respondData(c, http.StatusOK, map[string]any{"article": article})
}

// Create handles POST /articles.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title    formData  string  true   "title (3-200 chars)"
// @Param        content  formData  string  true   "content (min 10 chars)"
// @Param        status   formData  string  false  "DRAFT (default) or PUBLISHED"
// @Param        image    formData  file    false  "cover image"
// @Success      201      {object}  envelope
// @Failure      400      {object}  map[string]any
// @Failure      401      {object}  map[string]any
// @Failure      403      {object}  map[string]any
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.KindValidation, "invalid request payload")
	}

	// The image is written to disk before validation runs, mirroring the
	// upload pipeline; every validation-failure path below must clean it up.
	stored, err := h.storeImage(c)
	if err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		h.uploads.Remove(stored)
		return err
	}

	article, err := h.service.Create(c.Request().Context(), ports.CreateArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: h.publicURL(c, stored),
		Status:   req.Status,
		AuthorID: user.ID,
	})
	if err != nil {
		h.uploads.Remove(stored)
		return err
	}

	return respondMessage(c, http.StatusCreated, "Article created successfully", map[string]any{"article": article})
}

// Update handles PUT /articles/:id with partial-update semantics.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true   "article id"
// @Param        title    formData  string  false  "title (3-200 chars)"
// @Param        content  formData  string  false  "content (min 10 chars)"
// @Param        status   formData  string  false  "DRAFT or PUBLISHED"
// @Param        image    formData  file    false  "replacement cover image"
// @Success      200      {object}  envelope
// @Failure      400      {object}  map[string]any
// @Failure      401      {object}  map[string]any
// @Failure      403      {object}  map[string]any
// @Failure      404      {object}  map[string]any
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := h.articleID(c)
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.KindValidation, "invalid request payload")
	}

	stored, err := h.storeImage(c)
	if err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		h.uploads.Remove(stored)
		return err
	}

	in := ports.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
	if stored != "" {
		url := h.publicURL(c, stored)
		in.ImageURL = &url
	}

	article, err := h.service.Update(c.Request().Context(), id, user.ID, user.Role, in)
	if err != nil {
		h.uploads.Remove(stored)
		return err
	}

	return respondMessage(c, http.StatusOK, "Article updated successfully", map[string]any{"article": article})
}

// Delete handles DELETE /articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "article id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := h.articleID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, user.Role); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "Article deleted successfully", nil)
}

func (h *ArticleHandler) articleID(c echo.Context) (string, error) {
	param := articleIDParam{ID: c.Param("id")}
	if err := c.Validate(&param); err != nil {
		return "", err
	}
	return param.ID, nil
}

// storeImage saves the optional multipart image and returns its stored
// name, or "" when the request carries no file.
func (h *ArticleHandler) storeImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file field, or not a multipart request at all.
		return "", nil
	}
	return h.uploads.Save(fh)
}

// publicURL builds the externally reachable URL for a stored file from the
// request's scheme and host. Empty in, empty out.
func (h *ArticleHandler) publicURL(c echo.Context, stored string) string {
	if stored == "" {
		return ""
	}
	return c.Scheme() + "://" + c.Request().Host + "/uploads/" + stored
}
