package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/misshanya/shortlink/internal/errorz"
	"github.com/misshanya/shortlink/internal/models"
	"github.com/misshanya/shortlink/internal/transport/http/dto"
)

const (
	maxURLLength = 2083

	defaultPage  = 1
	defaultLimit = 20
)

var shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type service interface {
	CreateShortCode(ctx context.Context, originalURL string) (string, error)
	GetOriginalURL(ctx context.Context, shortCode string) (string, error)
	ListMappings(ctx context.Context, page, limit int) ([]models.URLMapping, error)
	DeleteMapping(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	ShortURL(code string) string
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{service: service}
}

// Register connects the handlers to g. Admin routes are only added when
// admin is true.
func (h *Handler) Register(g *echo.Group, admin bool) {
	g.POST("/short-url", h.CreateShortURL)
	g.GET("/healthcheck", h.Healthcheck)
	g.GET("/:short_code", h.GetOriginalURL)

	if admin {
		g.GET("/admin/mappings", h.ListMappings)
		g.DELETE("/admin/mappings/:id", h.DeleteMapping)
	}
}

func (h *Handler) CreateShortURL(c echo.Context) error {
	ctx := c.Request().Context()

	originalURL := c.QueryParam("original_url")
	if err := validateOriginalURL(originalURL); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shortURL, err := h.service.CreateShortCode(ctx, originalURL)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, &dto.ShortURLResponse{ShortURL: shortURL})
}

func (h *Handler) GetOriginalURL(c echo.Context) error {
	ctx := c.Request().Context()

	shortCode := c.Param("short_code")
	if err := validateShortCode(shortCode); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	originalURL, err := h.service.GetOriginalURL(ctx, shortCode)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, &dto.OriginalURLResponse{OriginalURL: originalURL})
}

func (h *Handler) Healthcheck(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.service.Ping(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, &dto.HealthResponse{
			Status:   "NOK",
			Database: "disconnected",
		})
	}

	return c.JSON(http.StatusOK, &dto.HealthResponse{
		Status:   "OK",
		Database: "connected",
	})
}

func (h *Handler) ListMappings(c echo.Context) error {
	ctx := c.Request().Context()

	page, limit := defaultPage, defaultLimit
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "page and limit must be integers")
	}

	mappings, err := h.service.ListMappings(ctx, page, limit)
	if err != nil {
		return mapServiceError(err)
	}

	resp := &dto.MappingListResponse{
		Page:     page,
		Limit:    limit,
		Mappings: make([]dto.MappingResponse, 0, len(mappings)),
	}
	for _, m := range mappings {
		resp.Mappings = append(resp.Mappings, dto.MappingResponse{
			ID:          m.ID,
			OriginalURL: m.OriginalURL,
			ShortCode:   m.ShortCode,
			ShortURL:    h.service.ShortURL(m.ShortCode),
		})
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteMapping(c echo.Context) error {
	ctx := c.Request().Context()

	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "id must be an integer")
	}

	if err := h.service.DeleteMapping(ctx, id); err != nil {
		return mapServiceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func validateOriginalURL(raw string) error {
	if raw == "" {
		return errors.New("original_url is required")
	}
	if len(raw) > maxURLLength {
		return fmt.Errorf("original_url must be at most %d characters", maxURLLength)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("original_url must be a valid http or https URL")
	}

	return nil
}

func validateShortCode(code string) error {
	if len(code) > maxURLLength {
		return fmt.Errorf("short_code must be at most %d characters", maxURLLength)
	}
	if !shortCodePattern.MatchString(code) {
		return errors.New("short_code must contain only letters and digits")
	}
	return nil
}

// mapServiceError turns service errors into HTTP errors. Unknown errors
// are hidden behind a generic 500 and kept as the internal error for logs.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, errorz.ErrMissing), errors.Is(err, errorz.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errorz.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errorz.ErrInvalidPage):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).
			SetInternal(err)
	}
}
