package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CollectionHandler struct {
	uc *usecase.CollectionUsecase
}

// DI
func NewCollectionHandler(uc *usecase.CollectionUsecase) *CollectionHandler {
	return &CollectionHandler{uc: uc}
}

type collectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ReleaseDate string `json:"releaseDate"`
}

func (h *CollectionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/collections", h.list)

	g := e.Group("")
	g.Use(middleware.AdminSession(cfg))

	g.POST("/collections", h.create)
	g.PUT("/collections/:id", h.update)
	g.DELETE("/collections/:id", h.delete)
}

func (h *CollectionHandler) list(c echo.Context) error {
	out, err := h.uc.ListCollections(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CollectionHandler) create(c echo.Context) error {
	in, err := bindCollectionInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateCollection(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CollectionHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := bindCollectionInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateCollection(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CollectionHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteCollection(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "collection deleted"})
}

func bindCollectionInput(c echo.Context) (usecase.CollectionInput, error) {
	var req collectionRequest
	if err := c.Bind(&req); err != nil {
		return usecase.CollectionInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var releaseDate time.Time
	if req.ReleaseDate != "" {
		t, err := parseDate(req.ReleaseDate)
		if err != nil {
			return usecase.CollectionInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid releaseDate")
		}
		releaseDate = t
	}

	return usecase.CollectionInput{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
	}, nil
}

// RFC3339か日付のみの両方を受ける
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
