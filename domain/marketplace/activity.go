package marketplace

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type ActivityType string

const (
	// listing
	ActivityTypeList            ActivityType = "list"
	ActivityTypeUpdateListing   ActivityType = "updateListing"
	ActivityTypeCancelListing   ActivityType = "cancelListing"
	ActivityTypeApproveBuyer    ActivityType = "approveBuyer"
	ActivityTypeApproveCurrency ActivityType = "approveCurrency"
	ActivityTypeBuy             ActivityType = "buy"

	// auction
	ActivityTypeCreateAuction  ActivityType = "createAuction"
	ActivityTypeCancelAuction  ActivityType = "cancelAuction"
	ActivityTypePlaceBid       ActivityType = "placeBid"
	ActivityTypeBuyout         ActivityType = "buyout"
	ActivityTypeCollectTokens  ActivityType = "collectTokens"
	ActivityTypeCollectPayout  ActivityType = "collectPayout"

	// offer
	ActivityTypeCreateOffer ActivityType = "createOffer"
	ActivityTypeCancelOffer ActivityType = "cancelOffer"
	ActivityTypeAcceptOffer ActivityType = "acceptOffer"
)

type EntityKind string

const (
	EntityKindListing EntityKind = "listing"
	EntityKindAuction EntityKind = "auction"
	EntityKindOffer   EntityKind = "offer"
)

// Activity is the durable audit record emitted exactly once per successful
// state-changing call.
type Activity struct {
	ActivityId   string         `json:"activityId" bson:"activityId"`
	Type         ActivityType   `json:"type" bson:"type"`
	EntityKind   EntityKind     `json:"entityKind" bson:"entityKind"`
	EntityId     int64          `json:"entityId" bson:"entityId"`
	Actor        domain.Address `json:"actor" bson:"actor"`
	Counterparty domain.Address `json:"counterparty" bson:"counterparty"`
	Quantity     int64          `json:"quantity" bson:"quantity"`
	Price        string         `json:"price" bson:"price"`
	Currency     domain.Address `json:"currency" bson:"currency"`

	// Payload carries the full resulting entity for creations and updates.
	Payload interface{} `json:"payload,omitempty" bson:"payload,omitempty"`

	Time time.Time `json:"time" bson:"time"`
}

type findActivityOptions struct {
	Actor      *domain.Address
	EntityKind *EntityKind
	EntityId   *int64
	Types      []ActivityType
	Offset     *int
	Limit      *int
}

type FindActivityOptionsFunc func(*findActivityOptions) error

func GetFindActivityOptions(opts ...FindActivityOptionsFunc) (*findActivityOptions, error) {
	res := &findActivityOptions{}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func ActivityWithActor(actor domain.Address) FindActivityOptionsFunc {
	return func(opts *findActivityOptions) error {
		opts.Actor = actor.ToLowerPtr()
		return nil
	}
}

func ActivityWithEntity(kind EntityKind, entityId int64) FindActivityOptionsFunc {
	return func(opts *findActivityOptions) error {
		opts.EntityKind = &kind
		opts.EntityId = &entityId
		return nil
	}
}

func ActivityWithTypes(types ...ActivityType) FindActivityOptionsFunc {
	return func(opts *findActivityOptions) error {
		opts.Types = types
		return nil
	}
}

func ActivityWithPagination(offset, limit int) FindActivityOptionsFunc {
	return func(opts *findActivityOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

type ActivityRepo interface {
	Insert(ctx.Ctx, *Activity) error
	FindAll(c ctx.Ctx, opts ...FindActivityOptionsFunc) ([]Activity, error)
	Count(c ctx.Ctx, opts ...FindActivityOptionsFunc) (int, error)
}
