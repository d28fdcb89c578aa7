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
	"github.com/x-xyz/marketplace/domain/auction"
	"github.com/x-xyz/marketplace/middleware"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
)

var met metrics.Service

type handler struct {
	auction auction.Usecase
}

func New(e *echo.Echo, auctionUC auction.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	met = metrics.New("auction")

	h := &handler{auctionUC}

	gs := e.Group("/auctions")

	gs.GET("", h.getAll, middleware.CacheHttp(10*time.Second))

	gs.GET("/count", h.getCount, middleware.CacheHttp(30*time.Second))

	gs.POST("", h.create, authMiddleware.Auth())

	g := e.Group("/auction/:auctionId")

	g.GET("", h.get)

	g.GET("/expired", h.isExpired)

	g.GET("/winning-bid", h.getWinningBid)

	g.DELETE("", h.cancel, authMiddleware.Auth())

	g.POST("/bids", h.bid, authMiddleware.Auth())

	g.POST("/collect-tokens", h.collectTokens, authMiddleware.Auth())

	g.POST("/collect-payout", h.collectPayout, authMiddleware.Auth())
}

func parseAuctionId(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("auctionId"), 10, 64)
}

func mapErrToStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrNotAuthorized:
		return http.StatusForbidden
	case domain.ErrBadParamInput, domain.ErrInvalidAddress, domain.ErrOutsideWindow,
		domain.ErrInvalidStatus, domain.ErrQuantityExceeded, domain.ErrBidTooLow,
		domain.ErrAuctionHasBids, domain.ErrAuctionLive, domain.ErrNoWinningBid,
		domain.ErrAlreadyPaidOut, domain.ErrInsufficientFunds, domain.ErrAssetNotOwned:
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
		res []*auction.Auction
		err error
	)
	if p.OnlyValid {
		res, err = h.auction.GetAllValidAuctions(ctx, p.StartId, p.EndId)
	} else {
		res, err = h.auction.GetAllAuctions(ctx, p.StartId, p.EndId)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cnt, err := h.auction.GetTotalCount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cnt)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	res, err := h.auction.GetAuction(ctx, auctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) isExpired(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	expired, err := h.auction.IsAuctionExpired(ctx, auctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, expired)
}

func (h *handler) getWinningBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	bid, err := h.auction.GetWinningBid(ctx, auctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, bid)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	p := &auction.CreateAuctionParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Creator = address
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	auctionId, err := h.auction.CreateAuction(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	met.BumpSum("create.count", 1)
	return delivery.MakeJsonResp(c, http.StatusCreated, auctionId)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	if err := h.auction.CancelAuction(ctx, address, auctionId); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	p := &auction.BidParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	p.Bidder = address
	p.AuctionId = auctionId
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.auction.Bid(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	met.BumpSum("bid.count", 1)
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) collectTokens(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	if err := h.auction.CollectTokens(ctx, address, auctionId); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) collectPayout(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Get("address").(domain.Address)

	auctionId, err := parseAuctionId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid auction id")
	}

	if err := h.auction.CollectPayout(ctx, address, auctionId); err != nil {
		return delivery.MakeJsonResp(c, mapErrToStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
