package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/offer"
	"github.com/x-xyz/marketplace/middleware"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	offer offer.Usecase
}

func New(e *echo.Echo, offerUC offer.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("offer")

	h := &handler{offerUC}

	gs := e.Group("/offers")

	gs.GET("", h.getAll, middleware.CacheHttp(10*time.Second))

	gs.GET("/count", h.getCount, middleware.CacheHttp(30*time.Second))

	gs.POST("", h.make, authMiddleware.Auth())

	g := e.Group("/offer/:offerId")

	g.GET("", h.get)

	g.DELETE("", h.cancel, authMiddleware.Auth())

	g.POST("/accept", h.accept, authMiddleware.Auth())
}

func parseOfferId(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("offerId"), 10, 64)
}

func mapErrToStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrNotAuthorized:
		return http.StatusForbidden
	case domain.ErrBadParamInput, domain.ErrInvalidAddress, domain.ErrOutsideWindow,
		domain.ErrInvalidStatus, domain.ErrOfferExpired, domain.ErrInsufficientFunds,
		domain.ErrAssetNotOwned:
		return http.StatusBadRequest
	case domain.ErrPaused:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		StartId   int64 `query:"startId"`
		EndId     int64 `query:"endId"`
		OnlyValid bool  `query:"onlyValid"`
	}{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	var (
		res []*offer.Offer
		err error
	)
	if p.OnlyValid {
		res, err = h.offer.GetAllValidOffers(ctx, p.StartId, p.EndId)
	} else {
		res, err = h.offer.GetAllOffers(ctx, p.StartId, p.EndId)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cnt, err := h.offer.GetTotalCount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cnt)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	offerId, err := parseOfferId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid offer id")
	}

	res, err := h.offer.GetOffer(ctx, offerId)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) make(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := &offer.MakeOfferParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Offeror = address
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offerId, err := h.offer.MakeOffer(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	met.BumpSum("make.count", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, offerId)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	offerId, err := parseOfferId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid offer id")
	}

	if err := h.offer.CancelOffer(ctx, address, offerId); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) accept(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	offerId, err := parseOfferId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid offer id")
	}

	if err := h.offer.AcceptOffer(ctx, address, offerId); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	met.BumpSum("accept.count", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
