package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/domain/marketplace"
)

// startTimeGrace tolerates clock skew between callers and the engine when
// validating a sale window that starts in the past.
const startTimeGrace = 30 * time.Minute

type listingUsecaseImpl struct {
	repo       listing.Repo
	idCounter  marketplace.IdCounterRepo
	activities marketplace.ActivityRepo
	settings   marketplace.SettingsUsecase
	custody    marketplace.TokenCustody
	funds      marketplace.FundTransferer
	fees       marketplace.FeeCalculator
}

type ListingUsecaseCfg struct {
	Repo       listing.Repo
	IdCounter  marketplace.IdCounterRepo
	Activities marketplace.ActivityRepo
	Settings   marketplace.SettingsUsecase
	Custody    marketplace.TokenCustody
	Funds      marketplace.FundTransferer
	Fees       marketplace.FeeCalculator
}

func NewListingUsecase(cfg *ListingUsecaseCfg) listing.Usecase {
	return &listingUsecaseImpl{
		repo:       cfg.Repo,
		idCounter:  cfg.IdCounter,
		activities: cfg.Activities,
		settings:   cfg.Settings,
		custody:    cfg.Custody,
		funds:      cfg.Funds,
		fees:       cfg.Fees,
	}
}

func (im *listingUsecaseImpl) ensureNotPaused(c ctx.Ctx) error {
	settings, err := im.settings.Get(c)
	if err != nil {
		return err
	}
	if settings.Paused {
		return domain.ErrPaused
	}
	return nil
}

func (im *listingUsecaseImpl) validateTerms(quantity int64, tokenType domain.TokenType, pricePerToken string, startTime, endTime time.Time, now time.Time) error {
	if quantity < 1 {
		return domain.ErrBadParamInput
	}
	if tokenType != domain.TokenType721 && tokenType != domain.TokenType1155 {
		return domain.ErrBadParamInput
	}
	if tokenType == domain.TokenType721 && quantity != 1 {
		return domain.ErrQuantityExceeded
	}
	price, err := domain.ParseAmount(pricePerToken)
	if err != nil || !price.IsPositive() {
		return domain.ErrBadParamInput
	}
	if !endTime.After(startTime) {
		return domain.ErrOutsideWindow
	}
	if startTime.Before(now.Add(-startTimeGrace)) {
		return domain.ErrOutsideWindow
	}
	if !endTime.After(now) {
		return domain.ErrOutsideWindow
	}
	return nil
}

func (im *listingUsecaseImpl) CreateListing(c ctx.Ctx, params *listing.CreateListingParams) (int64, error) {
	if err := im.ensureNotPaused(c); err != nil {
		return 0, err
	}

	now := time.Now()
	startTime := time.Unix(params.StartTime, 0)
	endTime := time.Unix(params.EndTime, 0)
	if err := im.validateTerms(params.Quantity, params.TokenType, params.PricePerToken, startTime, endTime, now); err != nil {
		return 0, err
	}

	owned, err := im.custody.VerifyOwnershipAndApproval(c, params.Creator, params.AssetContract, params.TokenId, params.TokenType, params.Quantity)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"creator": params.Creator,
		}).Error("failed to custody.VerifyOwnershipAndApproval")
		return 0, err
	}
	if !owned {
		return 0, domain.ErrAssetNotOwned
	}

	listingId, err := im.idCounter.Next(c, domain.TableListings)
	if err != nil {
		return 0, err
	}

	l := &listing.Listing{
		ListingId:         listingId,
		Creator:           params.Creator,
		AssetContract:     params.AssetContract,
		TokenId:           params.TokenId,
		TokenType:         params.TokenType,
		Quantity:          params.Quantity,
		Currency:          params.Currency,
		PricePerToken:     params.PricePerToken,
		StartTime:         startTime,
		EndTime:           endTime,
		Reserved:          params.Reserved,
		Status:            listing.StatusCreated,
		ApprovedBuyers:    map[string]bool{},
		CurrencyOverrides: map[string]string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := im.repo.Create(c, l); err != nil {
		return 0, err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeList,
		EntityId: listingId,
		Actor:    params.Creator.ToLower(),
		Quantity: params.Quantity,
		Price:    params.PricePerToken,
		Currency: params.Currency.ToLower(),
		Payload:  l,
	})

	return listingId, nil
}

func (im *listingUsecaseImpl) UpdateListing(c ctx.Ctx, listingId int64, params *listing.UpdateListingParams) error {
	if err := im.ensureNotPaused(c); err != nil {
		return err
	}

	l, err := im.repo.FindOne(c, listingId)
	if err != nil {
		return err
	}
	if !l.Creator.Equals(params.Actor) {
		return domain.ErrNotAuthorized
	}
	if l.Status != listing.StatusCreated {
		return domain.ErrInvalidStatus
	}
	// the listed asset is immutable, only the sale terms may change
	if !params.AssetContract.Equals(l.AssetContract) || params.TokenId != l.TokenId || params.TokenType != l.TokenType {
		return domain.ErrBadParamInput
	}

	now := time.Now()
	startTime := time.Unix(params.StartTime, 0)
	endTime := time.Unix(params.EndTime, 0)
	if err := im.validateTerms(params.Quantity, l.TokenType, params.PricePerToken, startTime, endTime, now); err != nil {
		return err
	}

	owned, err := im.custody.VerifyOwnershipAndApproval(c, l.Creator, l.AssetContract, l.TokenId, l.TokenType, params.Quantity)
	if err != nil {
		return err
	}
	if !owned {
		return domain.ErrAssetNotOwned
	}

	currency := params.Currency.ToLower()
	patch := &listing.Patchable{
		Quantity:      &params.Quantity,
		Currency:      &currency,
		PricePerToken: &params.PricePerToken,
		StartTime:     &startTime,
		EndTime:       &endTime,
		Reserved:      &params.Reserved,
		UpdatedAt:     &now,
	}
	if err := im.repo.Patch(c, listingId, patch); err != nil {
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeUpdateListing,
		EntityId: listingId,
		Actor:    params.Actor.ToLower(),
		Quantity: params.Quantity,
		Price:    params.PricePerToken,
		Currency: currency,
	})

	return nil
}

func (im *listingUsecaseImpl) CancelListing(c ctx.Ctx, actor domain.Address, listingId int64) error {
	l, err := im.repo.FindOne(c, listingId)
	if err != nil {
		return err
	}
	if !l.Creator.Equals(actor) {
		return domain.ErrNotAuthorized
	}
	if l.Status != listing.StatusCreated {
		return domain.ErrInvalidStatus
	}

	now := time.Now()
	status := listing.StatusCancelled
	if err := im.repo.Patch(c, listingId, &listing.Patchable{Status: &status, UpdatedAt: &now}); err != nil {
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeCancelListing,
		EntityId: listingId,
		Actor:    actor.ToLower(),
	})

	return nil
}

func (im *listingUsecaseImpl) ApproveBuyer(c ctx.Ctx, actor domain.Address, listingId int64, buyer domain.Address, approved bool) error {
	l, err := im.repo.FindOne(c, listingId)
	if err != nil {
		return err
	}
	if !l.Creator.Equals(actor) {
		return domain.ErrNotAuthorized
	}
	if l.Status != listing.StatusCreated {
		return domain.ErrInvalidStatus
	}

	buyers := l.ApprovedBuyers
	if buyers == nil {
		buyers = map[string]bool{}
	}
	if approved {
		buyers[buyer.ToLowerStr()] = true
	} else {
		delete(buyers, buyer.ToLowerStr())
	}

	now := time.Now()
	if err := im.repo.Patch(c, listingId, &listing.Patchable{ApprovedBuyers: &buyers, UpdatedAt: &now}); err != nil {
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:         marketplace.ActivityTypeApproveBuyer,
		EntityId:     listingId,
		Actor:        actor.ToLower(),
		Counterparty: buyer.ToLower(),
	})

	return nil
}

func (im *listingUsecaseImpl) ApproveCurrency(c ctx.Ctx, actor domain.Address, listingId int64, currency domain.Address, pricePerToken string) error {
	l, err := im.repo.FindOne(c, listingId)
	if err != nil {
		return err
	}
	if !l.Creator.Equals(actor) {
		return domain.ErrNotAuthorized
	}
	if l.Status != listing.StatusCreated {
		return domain.ErrInvalidStatus
	}

	price, err := domain.ParseAmount(pricePerToken)
	if err != nil {
		return domain.ErrBadParamInput
	}

	if currency.Equals(l.Currency) {
		// the base currency price is fixed by the listing terms
		if pricePerToken != l.PricePerToken {
			return domain.ErrBadParamInput
		}
		im.emitActivity(c, &marketplace.Activity{
			Type:     marketplace.ActivityTypeApproveCurrency,
			EntityId: listingId,
			Actor:    actor.ToLower(),
			Price:    pricePerToken,
			Currency: currency.ToLower(),
		})
		return nil
	}

	overrides := l.CurrencyOverrides
	if overrides == nil {
		overrides = map[string]string{}
	}
	if price.IsPositive() {
		overrides[currency.ToLowerStr()] = pricePerToken
	} else {
		delete(overrides, currency.ToLowerStr())
	}

	now := time.Now()
	if err := im.repo.Patch(c, listingId, &listing.Patchable{CurrencyOverrides: &overrides, UpdatedAt: &now}); err != nil {
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeApproveCurrency,
		EntityId: listingId,
		Actor:    actor.ToLower(),
		Price:    pricePerToken,
		Currency: currency.ToLower(),
	})

	return nil
}

// revertListing writes the pre-purchase quantity and status back after a
// failed transfer so the call leaves no partial state behind.
func (im *listingUsecaseImpl) revertListing(c ctx.Ctx, l *listing.Listing) {
	now := time.Now()
	patch := &listing.Patchable{Quantity: &l.Quantity, Status: &l.Status, UpdatedAt: &now}
	if err := im.repo.Patch(c, l.ListingId, patch); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": l.ListingId,
		}).Error("failed to repo.Patch reverting listing")
	}
}

func (im *listingUsecaseImpl) Buy(c ctx.Ctx, params *listing.BuyParams) error {
	if err := im.ensureNotPaused(c); err != nil {
		return err
	}

	l, err := im.repo.FindOne(c, params.ListingId)
	if err != nil {
		return err
	}
	if l.Status != listing.StatusCreated {
		return domain.ErrInvalidStatus
	}

	now := time.Now()
	if now.Before(l.StartTime) || !now.Before(l.EndTime) {
		return domain.ErrOutsideWindow
	}
	if params.Quantity < 1 || params.Quantity > l.Quantity {
		return domain.ErrQuantityExceeded
	}
	if !l.IsBuyerApproved(params.Buyer) {
		return domain.ErrBuyerNotApproved
	}

	unitPrice, err := l.UnitPriceFor(params.Currency)
	if err != nil {
		return err
	}
	unit, err := domain.ParseAmount(unitPrice)
	if err != nil {
		return err
	}
	totalPrice := unit.Mul(decimal.NewFromInt(params.Quantity))

	expected, err := domain.ParseAmount(params.ExpectedTotalPrice)
	if err != nil {
		return domain.ErrBadParamInput
	}
	if !totalPrice.Equal(expected) {
		return domain.ErrPriceMismatch
	}

	// the asset is not escrowed, so re-check the seller before moving funds
	owned, err := im.custody.VerifyOwnershipAndApproval(c, l.Creator, l.AssetContract, l.TokenId, l.TokenType, params.Quantity)
	if err != nil {
		return err
	}
	if !owned {
		return domain.ErrAssetNotOwned
	}

	solvent, err := im.funds.CheckBalanceAndAllowance(c, params.Buyer, params.Currency, totalPrice)
	if err != nil {
		return err
	}
	if !solvent {
		return domain.ErrInsufficientFunds
	}

	splits, err := im.fees.Splits(c, l.AssetContract, l.TokenId, params.Currency, totalPrice)
	if err != nil {
		return err
	}

	// commit the quantity and status before any transfer so a re-entrant call
	// observes the listing already consumed
	remaining := l.Quantity - params.Quantity
	patch := &listing.Patchable{Quantity: &remaining, UpdatedAt: &now}
	if remaining == 0 {
		status := listing.StatusCompleted
		patch.Status = &status
	}
	if err := im.repo.Patch(c, params.ListingId, patch); err != nil {
		return err
	}

	sellerProceeds := totalPrice
	for _, split := range splits {
		if err := im.funds.Transfer(c, params.Currency, params.Buyer, split.Recipient, split.Amount); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": params.ListingId,
				"recipient": split.Recipient,
			}).Error("failed to funds.Transfer fee split")
			im.revertListing(c, l)
			return err
		}
		sellerProceeds = sellerProceeds.Sub(split.Amount)
	}
	if err := im.funds.Transfer(c, params.Currency, params.Buyer, l.Creator, sellerProceeds); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": params.ListingId,
		}).Error("failed to funds.Transfer seller proceeds")
		im.revertListing(c, l)
		return err
	}

	if err := im.custody.Transfer(c, l.AssetContract, l.TokenId, l.TokenType, l.Creator, params.BuyFor, params.Quantity); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": params.ListingId,
		}).Error("failed to custody.Transfer")
		im.revertListing(c, l)
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:         marketplace.ActivityTypeBuy,
		EntityId:     params.ListingId,
		Actor:        params.Buyer.ToLower(),
		Counterparty: l.Creator,
		Quantity:     params.Quantity,
		Price:        totalPrice.String(),
		Currency:     params.Currency.ToLower(),
	})

	return nil
}

func (im *listingUsecaseImpl) GetListing(c ctx.Ctx, listingId int64) (*listing.Listing, error) {
	return im.repo.FindOne(c, listingId)
}

func (im *listingUsecaseImpl) GetAllListings(c ctx.Ctx, startId, endId int64) ([]*listing.Listing, error) {
	return im.repo.FindAll(c, listing.WithIdRange(startId, endId), listing.WithSort(domain.SortDirAsc))
}

// GetAllValidListings filters out listings whose sale window has closed or
// whose creator no longer holds the listed quantity. Invalid entries are only
// skipped, never mutated.
func (im *listingUsecaseImpl) GetAllValidListings(c ctx.Ctx, startId, endId int64) ([]*listing.Listing, error) {
	listings, err := im.repo.FindAll(c,
		listing.WithIdRange(startId, endId),
		listing.WithStatus(listing.StatusCreated),
		listing.WithSort(domain.SortDirAsc),
	)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return []*listing.Listing{}, nil
	}

	now := time.Now()
	valid := make([]bool, len(listings))

	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(listings)))
	defer b.Close()
	for i := 0; i < len(listings); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			l := listings[idx]
			if now.Before(l.StartTime) || !now.Before(l.EndTime) {
				return idx, nil
			}
			owned, err := im.custody.VerifyOwnershipAndApproval(c, l.Creator, l.AssetContract, l.TokenId, l.TokenType, l.Quantity)
			if err != nil {
				c.WithFields(log.Fields{
					"err":       err,
					"listingId": l.ListingId,
				}).Error("failed to custody.VerifyOwnershipAndApproval")
				return idx, nil
			}
			valid[idx] = owned
			return idx, nil
		})
	}
	b.QueueComplete()
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Error("validate listing error result")
		}
	}

	res := []*listing.Listing{}
	for i, l := range listings {
		if valid[i] {
			res = append(res, l)
		}
	}
	return res, nil
}

func (im *listingUsecaseImpl) GetTotalCount(c ctx.Ctx) (int, error) {
	return im.repo.Count(c)
}

func (im *listingUsecaseImpl) emitActivity(c ctx.Ctx, activity *marketplace.Activity) {
	activity.ActivityId = uuid.NewString()
	activity.EntityKind = marketplace.EntityKindListing
	activity.Time = time.Now()
	if err := im.activities.Insert(c, activity); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"activity": *activity,
		}).Error("failed to activities.Insert")
	}
}
