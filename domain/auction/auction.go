package auction

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Bid struct {
	Bidder    domain.Address `json:"bidder" bson:"bidder"`
	BidAmount string         `json:"bidAmount" bson:"bidAmount"`
	BidTime   time.Time      `json:"bidTime" bson:"bidTime"`
}

// Terms are fixed at creation and never change afterwards.
type Terms struct {
	AssetContract       domain.Address   `json:"assetContract" bson:"assetContract"`
	TokenId             domain.TokenId   `json:"tokenId" bson:"tokenId"`
	TokenType           domain.TokenType `json:"tokenType" bson:"tokenType"`
	Quantity            int64            `json:"quantity" bson:"quantity"`
	Currency            domain.Address   `json:"currency" bson:"currency"`
	MinimumBidAmount    string           `json:"minimumBidAmount" bson:"minimumBidAmount"`
	BuyoutBidAmount     string           `json:"buyoutBidAmount" bson:"buyoutBidAmount"`
	TimeBufferInSeconds int64            `json:"timeBufferInSeconds" bson:"timeBufferInSeconds"`
	BidBufferBps        int64            `json:"bidBufferBps" bson:"bidBufferBps"`
	StartTime           time.Time        `json:"startTime" bson:"startTime"`
}

// State carries the only fields that may change after creation: the end time
// (anti-sniping extension, monotonic), the winning bid, the status and the two
// payout flags.
type State struct {
	EndTime          time.Time `json:"endTime" bson:"endTime"`
	WinningBid       *Bid      `json:"winningBid" bson:"winningBid"`
	Status           Status    `json:"status" bson:"status"`
	PaidOutTokens    bool      `json:"paidOutTokens" bson:"paidOutTokens"`
	PaidOutBidAmount bool      `json:"paidOutBidAmount" bson:"paidOutBidAmount"`
}

type Auction struct {
	AuctionId int64          `json:"auctionId" bson:"auctionId"`
	Creator   domain.Address `json:"creator" bson:"creator"`
	Terms     `bson:"inline"`
	State     State     `json:"state" bson:"state"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (a *Auction) LowerCase() {
	a.Creator = a.Creator.ToLower()
	a.AssetContract = a.AssetContract.ToLower()
	a.Currency = a.Currency.ToLower()
}

func (a *Auction) HasBid() bool {
	return a.State.WinningBid != nil
}

func (a *Auction) IsExpiredAt(now time.Time) bool {
	return !now.Before(a.State.EndTime)
}

// IsNewWinningBid reports whether bidAmount qualifies as the new winning bid.
// The first bid only needs to meet the minimum; later bids must also clear the
// basis-points step-up over the current winning bid.
func (a *Auction) IsNewWinningBid(bidAmount decimal.Decimal) (bool, error) {
	minimum, err := domain.ParseAmount(a.MinimumBidAmount)
	if err != nil {
		return false, err
	}
	if bidAmount.LessThan(minimum) {
		return false, nil
	}
	if !a.HasBid() {
		return true, nil
	}
	current, err := domain.ParseAmount(a.State.WinningBid.BidAmount)
	if err != nil {
		return false, err
	}
	step := current.Mul(decimal.NewFromInt(a.BidBufferBps)).Div(decimal.NewFromInt(10000))
	return !bidAmount.LessThan(current.Add(step)), nil
}

type Patchable struct {
	EndTime          *time.Time `bson:"state.endTime,omitempty"`
	WinningBid       *Bid       `bson:"state.winningBid,omitempty"`
	Status           *Status    `bson:"state.status,omitempty"`
	PaidOutTokens    *bool      `bson:"state.paidOutTokens,omitempty"`
	PaidOutBidAmount *bool      `bson:"state.paidOutBidAmount,omitempty"`
}

type CreateAuctionParams struct {
	Creator             domain.Address   `json:"creator" validate:"required"`
	AssetContract       domain.Address   `json:"assetContract" validate:"required"`
	TokenId             domain.TokenId   `json:"tokenId" validate:"required"`
	TokenType           domain.TokenType `json:"tokenType" validate:"required"`
	Quantity            int64            `json:"quantity" validate:"required"`
	Currency            domain.Address   `json:"currency" validate:"required"`
	MinimumBidAmount    string           `json:"minimumBidAmount" validate:"required"`
	BuyoutBidAmount     string           `json:"buyoutBidAmount"`
	TimeBufferInSeconds int64            `json:"timeBufferInSeconds"`
	BidBufferBps        int64            `json:"bidBufferBps"`
	StartTime           int64            `json:"startTime" validate:"required"`
	EndTime             int64            `json:"endTime" validate:"required"`
}

type BidParams struct {
	Bidder    domain.Address `json:"-"`
	AuctionId int64          `json:"auctionId"`
	BidAmount string         `json:"bidAmount" validate:"required"`
}

type findAllOptions struct {
	IdGTE   *int64
	IdLTE   *int64
	Creator *domain.Address
	Status  *Status
	SortDir *domain.SortDir
	Offset  *int
	Limit   *int
}

type FindAllOptionsFunc func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (*findAllOptions, error) {
	res := &findAllOptions{}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func WithIdRange(startId, endId int64) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.IdGTE = &startId
		opts.IdLTE = &endId
		return nil
	}
}

func WithCreator(creator domain.Address) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Creator = creator.ToLowerPtr()
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Status = &status
		return nil
	}
}

func WithSort(dir domain.SortDir) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.SortDir = &dir
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

type Repo interface {
	Create(ctx.Ctx, *Auction) error
	FindOne(c ctx.Ctx, auctionId int64) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Patch(c ctx.Ctx, auctionId int64, patch *Patchable) error
	// Update replaces the stored document wholesale. Patch cannot clear the
	// winning bid, so reverting a failed bid needs the full document back.
	Update(c ctx.Ctx, auctionId int64, a *Auction) error
	Remove(c ctx.Ctx, auctionId int64) error
}

type Usecase interface {
	CreateAuction(c ctx.Ctx, params *CreateAuctionParams) (int64, error)
	CancelAuction(c ctx.Ctx, actor domain.Address, auctionId int64) error
	Bid(c ctx.Ctx, params *BidParams) error
	CollectTokens(c ctx.Ctx, actor domain.Address, auctionId int64) error
	CollectPayout(c ctx.Ctx, actor domain.Address, auctionId int64) error
	IsAuctionExpired(c ctx.Ctx, auctionId int64) (bool, error)
	GetAuction(c ctx.Ctx, auctionId int64) (*Auction, error)
	GetAllAuctions(c ctx.Ctx, startId, endId int64) ([]*Auction, error)
	GetAllValidAuctions(c ctx.Ctx, startId, endId int64) ([]*Auction, error)
	GetWinningBid(c ctx.Ctx, auctionId int64) (*Bid, error)
	GetTotalCount(c ctx.Ctx) (int, error)
}
