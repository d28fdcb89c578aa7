package offer

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type Status string

const (
	StatusCreated   Status = "created"
	StatusAccepted  Status = "accepted"
	StatusCancelled Status = "cancelled"
)

// Offer is a buyer-initiated bid on a token. The total price is escrowed at
// creation so the seller can accept instantly without re-checking solvency.
type Offer struct {
	OfferId             int64            `json:"offerId" bson:"offerId"`
	Offeror             domain.Address   `json:"offeror" bson:"offeror"`
	AssetContract       domain.Address   `json:"assetContract" bson:"assetContract"`
	TokenId             domain.TokenId   `json:"tokenId" bson:"tokenId"`
	TokenType           domain.TokenType `json:"tokenType" bson:"tokenType"`
	Quantity            int64            `json:"quantity" bson:"quantity"`
	Currency            domain.Address   `json:"currency" bson:"currency"`
	TotalPrice          string           `json:"totalPrice" bson:"totalPrice"`
	ExpirationTimestamp time.Time        `json:"expirationTimestamp" bson:"expirationTimestamp"`
	Status              Status           `json:"status" bson:"status"`
	CreatedAt           time.Time        `json:"createdAt" bson:"createdAt"`
}

func (o *Offer) LowerCase() {
	o.Offeror = o.Offeror.ToLower()
	o.AssetContract = o.AssetContract.ToLower()
	o.Currency = o.Currency.ToLower()
}

// IsExpiredAt reports whether the offer is inert due to expiration,
// independent of its stored status.
func (o *Offer) IsExpiredAt(now time.Time) bool {
	return !now.Before(o.ExpirationTimestamp)
}

type Patchable struct {
	Status *Status `bson:"status,omitempty"`
}

type MakeOfferParams struct {
	Offeror             domain.Address   `json:"offeror" validate:"required"`
	AssetContract       domain.Address   `json:"assetContract" validate:"required"`
	TokenId             domain.TokenId   `json:"tokenId" validate:"required"`
	TokenType           domain.TokenType `json:"tokenType" validate:"required"`
	Quantity            int64            `json:"quantity" validate:"required"`
	Currency            domain.Address   `json:"currency" validate:"required"`
	TotalPrice          string           `json:"totalPrice" validate:"required"`
	ExpirationTimestamp int64            `json:"expirationTimestamp" validate:"required"`
}

type findAllOptions struct {
	IdGTE   *int64
	IdLTE   *int64
	Offeror *domain.Address
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

func WithOfferor(offeror domain.Address) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Offeror = offeror.ToLowerPtr()
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
	Create(ctx.Ctx, *Offer) error
	FindOne(c ctx.Ctx, offerId int64) (*Offer, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Patch(c ctx.Ctx, offerId int64, patch *Patchable) error
	Remove(c ctx.Ctx, offerId int64) error
}

type Usecase interface {
	MakeOffer(c ctx.Ctx, params *MakeOfferParams) (int64, error)
	CancelOffer(c ctx.Ctx, actor domain.Address, offerId int64) error
	AcceptOffer(c ctx.Ctx, actor domain.Address, offerId int64) error
	GetOffer(c ctx.Ctx, offerId int64) (*Offer, error)
	GetAllOffers(c ctx.Ctx, startId, endId int64) ([]*Offer, error)
	GetAllValidOffers(c ctx.Ctx, startId, endId int64) ([]*Offer, error)
	GetTotalCount(c ctx.Ctx) (int, error)
}
