package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
	"github.com/x-xyz/marketplace/middleware"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
)

type handler struct {
	settings   marketplace.SettingsUsecase
	activities marketplace.ActivityRepo
}

func New(e *echo.Echo, settings marketplace.SettingsUsecase, activities marketplace.ActivityRepo, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{settings, activities}

	g := e.Group("/settings")

	g.GET("", h.getSettings, middleware.CacheHttp(10*time.Second))

	g.PUT("", h.updateSettings, authMiddleware.Auth(), authMiddleware.IsAdmin())

	g.POST("/pause", h.pause, authMiddleware.Auth(), authMiddleware.IsAdmin())

	g.POST("/unpause", h.unpause, authMiddleware.Auth(), authMiddleware.IsAdmin())

	e.GET("/activities", h.getActivities, middleware.CacheHttp(10*time.Second))
}

func mapErrToStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrNotAuthorized:
		return http.StatusForbidden
	case domain.ErrBadParamInput, domain.ErrInvalidAddress:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) getSettings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.settings.Get(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) updateSettings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &marketplace.SettingsUpdater{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.settings.Update(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) pause(c echo.Context) error {
	return h.setPaused(c, true)
}

func (h *handler) unpause(c echo.Context) error {
	return h.setPaused(c, false)
}

func (h *handler) setPaused(c echo.Context, paused bool) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.settings.SetPaused(ctx, paused)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		Actor      *domain.Address            `query:"actor"`
		EntityKind *marketplace.EntityKind    `query:"entityKind"`
		EntityId   *int64                     `query:"entityId"`
		Types      []marketplace.ActivityType `query:"types"`
		Offset     int                        `query:"offset"`
		Limit      int                        `query:"limit"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if p.Limit == 0 || p.Limit > 500 {
		p.Limit = 500
	}

	opts := []marketplace.FindActivityOptionsFunc{
		marketplace.ActivityWithPagination(p.Offset, p.Limit),
	}
	if p.Actor != nil {
		opts = append(opts, marketplace.ActivityWithActor(*p.Actor))
	}
	if p.EntityKind != nil && p.EntityId != nil {
		opts = append(opts, marketplace.ActivityWithEntity(*p.EntityKind, *p.EntityId))
	}
	if len(p.Types) > 0 {
		opts = append(opts, marketplace.ActivityWithTypes(p.Types...))
	}

	res, err := h.activities.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
