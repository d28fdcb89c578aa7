package listing

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Listing is a fixed-price sale. The asset is not escrowed: ownership and
// approval are re-checked at purchase time, so a listing can become invalid
// without being cancelled.
type Listing struct {
	ListingId     int64            `json:"listingId" bson:"listingId"`
	Creator       domain.Address   `json:"creator" bson:"creator"`
	AssetContract domain.Address   `json:"assetContract" bson:"assetContract"`
	TokenId       domain.TokenId   `json:"tokenId" bson:"tokenId"`
	TokenType     domain.TokenType `json:"tokenType" bson:"tokenType"`
	Quantity      int64            `json:"quantity" bson:"quantity"`
	Currency      domain.Address   `json:"currency" bson:"currency"`
	PricePerToken string           `json:"pricePerToken" bson:"pricePerToken"`
	StartTime     time.Time        `json:"startTime" bson:"startTime"`
	EndTime       time.Time        `json:"endTime" bson:"endTime"`
	Reserved      bool             `json:"reserved" bson:"reserved"`
	Status        Status           `json:"status" bson:"status"`

	// ApprovedBuyers is consulted only when Reserved is set. Keys are
	// lowercased addresses.
	ApprovedBuyers map[string]bool `json:"approvedBuyers" bson:"approvedBuyers"`

	// CurrencyOverrides maps an approved alternate currency to a seller-set
	// price per token in that currency. An override price has no ordering
	// constraint against PricePerToken.
	CurrencyOverrides map[string]string `json:"currencyOverrides" bson:"currencyOverrides"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) LowerCase() {
	l.Creator = l.Creator.ToLower()
	l.AssetContract = l.AssetContract.ToLower()
	l.Currency = l.Currency.ToLower()
}

// UnitPriceFor resolves the effective price per token of a purchase currency.
func (l *Listing) UnitPriceFor(currency domain.Address) (string, error) {
	if currency.Equals(l.Currency) {
		return l.PricePerToken, nil
	}
	if price, ok := l.CurrencyOverrides[currency.ToLowerStr()]; ok {
		return price, nil
	}
	return "", domain.ErrCurrencyNotApproved
}

func (l *Listing) IsBuyerApproved(buyer domain.Address) bool {
	if !l.Reserved {
		return true
	}
	return l.ApprovedBuyers[buyer.ToLowerStr()]
}

type Patchable struct {
	Quantity          *int64             `bson:"quantity,omitempty"`
	Currency          *domain.Address    `bson:"currency,omitempty"`
	PricePerToken     *string            `bson:"pricePerToken,omitempty"`
	StartTime         *time.Time         `bson:"startTime,omitempty"`
	EndTime           *time.Time         `bson:"endTime,omitempty"`
	Reserved          *bool              `bson:"reserved,omitempty"`
	Status            *Status            `bson:"status,omitempty"`
	ApprovedBuyers    *map[string]bool   `bson:"approvedBuyers,omitempty"`
	CurrencyOverrides *map[string]string `bson:"currencyOverrides,omitempty"`
	UpdatedAt         *time.Time         `bson:"updatedAt,omitempty"`
}

type CreateListingParams struct {
	Creator       domain.Address   `json:"creator" validate:"required"`
	AssetContract domain.Address   `json:"assetContract" validate:"required"`
	TokenId       domain.TokenId   `json:"tokenId" validate:"required"`
	TokenType     domain.TokenType `json:"tokenType" validate:"required"`
	Quantity      int64            `json:"quantity" validate:"required"`
	Currency      domain.Address   `json:"currency" validate:"required"`
	PricePerToken string           `json:"pricePerToken" validate:"required"`
	StartTime     int64            `json:"startTime" validate:"required"`
	EndTime       int64            `json:"endTime" validate:"required"`
	Reserved      bool             `json:"reserved"`
}

type UpdateListingParams struct {
	Actor         domain.Address   `json:"-"`
	AssetContract domain.Address   `json:"assetContract" validate:"required"`
	TokenId       domain.TokenId   `json:"tokenId" validate:"required"`
	TokenType     domain.TokenType `json:"tokenType" validate:"required"`
	Quantity      int64            `json:"quantity" validate:"required"`
	Currency      domain.Address   `json:"currency" validate:"required"`
	PricePerToken string           `json:"pricePerToken" validate:"required"`
	StartTime     int64            `json:"startTime" validate:"required"`
	EndTime       int64            `json:"endTime" validate:"required"`
	Reserved      bool             `json:"reserved"`
}

type BuyParams struct {
	Buyer              domain.Address `json:"-"`
	ListingId          int64          `json:"listingId"`
	BuyFor             domain.Address `json:"buyFor" validate:"required"`
	Quantity           int64          `json:"quantity" validate:"required"`
	Currency           domain.Address `json:"currency" validate:"required"`
	ExpectedTotalPrice string         `json:"expectedTotalPrice" validate:"required"`
}

type findAllOptions struct {
	IdGTE    *int64
	IdLTE    *int64
	Creator  *domain.Address
	Status   *Status
	SortDir  *domain.SortDir
	Offset   *int
	Limit    *int
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
	Create(ctx.Ctx, *Listing) error
	FindOne(c ctx.Ctx, listingId int64) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Patch(c ctx.Ctx, listingId int64, patch *Patchable) error
	Remove(c ctx.Ctx, listingId int64) error
}

type Usecase interface {
	CreateListing(c ctx.Ctx, params *CreateListingParams) (int64, error)
	UpdateListing(c ctx.Ctx, listingId int64, params *UpdateListingParams) error
	CancelListing(c ctx.Ctx, actor domain.Address, listingId int64) error
	ApproveBuyer(c ctx.Ctx, actor domain.Address, listingId int64, buyer domain.Address, approved bool) error
	ApproveCurrency(c ctx.Ctx, actor domain.Address, listingId int64, currency domain.Address, pricePerToken string) error
	Buy(c ctx.Ctx, params *BuyParams) error
	GetListing(c ctx.Ctx, listingId int64) (*Listing, error)
	GetAllListings(c ctx.Ctx, startId, endId int64) ([]*Listing, error)
	GetAllValidListings(c ctx.Ctx, startId, endId int64) ([]*Listing, error)
	GetTotalCount(c ctx.Ctx) (int, error)
}
