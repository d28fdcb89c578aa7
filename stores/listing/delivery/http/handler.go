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
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/middleware"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	listing listing.Usecase
}

func New(e *echo.Echo, listingUC listing.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("listing")

	h := &handler{listingUC}

	gs := e.Group("/listings")

	gs.GET("", h.getAll, middleware.CacheHttp(10*time.Second))

	gs.GET("/count", h.getCount, middleware.CacheHttp(30*time.Second))

	gs.POST("", h.create, authMiddleware.Auth())

	g := e.Group("/listing/:listingId")

	g.GET("", h.get, h.listingRequestCount())

	g.PUT("", h.update, authMiddleware.Auth())

	g.DELETE("", h.cancel, authMiddleware.Auth())

	g.POST("/buy", h.buy, authMiddleware.Auth())

	g.POST("/approved-buyers", h.approveBuyer, authMiddleware.Auth())

	g.POST("/approved-currencies", h.approveCurrency, authMiddleware.Auth())
}

func parseListingId(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("listingId"), 10, 64)
}

func (h *handler) listingRequestCount() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			met.BumpSum("get.count", 1, "listingId", c.Param("listingId"))
			return next(c)
		}
	}
}

func mapErrToStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrNotAuthorized:
		return http.StatusForbidden
	case domain.ErrBadParamInput, domain.ErrInvalidAddress, domain.ErrOutsideWindow,
		domain.ErrInvalidStatus, domain.ErrQuantityExceeded, domain.ErrBuyerNotApproved,
		domain.ErrCurrencyNotApproved, domain.ErrPriceMismatch, domain.ErrInsufficientFunds,
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
		res []*listing.Listing
		err error
	)
	if p.OnlyValid {
		res, err = h.listing.GetAllValidListings(ctx, p.StartId, p.EndId)
	} else {
		res, err = h.listing.GetAllListings(ctx, p.StartId, p.EndId)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cnt, err := h.listing.GetTotalCount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cnt)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	listingId, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	res, err := h.listing.GetListing(ctx, listingId)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := &listing.CreateListingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Creator = address
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listingId, err := h.listing.CreateListing(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, listingId)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	listingId, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	p := &listing.UpdateListingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Actor = address
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.UpdateListing(ctx, listingId, p); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	listingId, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	if err := h.listing.CancelListing(ctx, address, listingId); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	listingId, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	p := &listing.BuyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Buyer = address
	p.ListingId = listingId
	if p.BuyFor.IsEmpty() {
		p.BuyFor = address
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.Buy(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) approveBuyer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	listingId, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	p := &struct {
		Buyer    domain.Address `json:"buyer" validate:"required"`
		Approved bool           `json:"approved"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.ApproveBuyer(ctx, address, listingId, p.Buyer, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) approveCurrency(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	listingId, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
	}

	p := &struct {
		Currency      domain.Address `json:"currency" validate:"required"`
		PricePerToken string         `json:"pricePerToken"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.listing.ApproveCurrency(ctx, address, listingId, p.Currency, p.PricePerToken); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
