package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
	"github.com/x-xyz/marketplace/domain/offer"
)

type offerUsecaseImpl struct {
	repo       offer.Repo
	idCounter  marketplace.IdCounterRepo
	activities marketplace.ActivityRepo
	settings   marketplace.SettingsUsecase
	custody    marketplace.TokenCustody
	funds      marketplace.FundTransferer
	fees       marketplace.FeeCalculator
	escrow     domain.Address
}

type OfferUsecaseCfg struct {
	Repo       offer.Repo
	IdCounter  marketplace.IdCounterRepo
	Activities marketplace.ActivityRepo
	Settings   marketplace.SettingsUsecase
	Custody    marketplace.TokenCustody
	Funds      marketplace.FundTransferer
	Fees       marketplace.FeeCalculator

	// EscrowAddress holds the offered funds until acceptance or cancellation
	EscrowAddress domain.Address
}

func NewOfferUsecase(cfg *OfferUsecaseCfg) offer.Usecase {
	return &offerUsecaseImpl{
		repo:       cfg.Repo,
		idCounter:  cfg.IdCounter,
		activities: cfg.Activities,
		settings:   cfg.Settings,
		custody:    cfg.Custody,
		funds:      cfg.Funds,
		fees:       cfg.Fees,
		escrow:     cfg.EscrowAddress.ToLower(),
	}
}

func (im *offerUsecaseImpl) ensureNotPaused(c ctx.Ctx) error {
	settings, err := im.settings.Get(c)
	if err != nil {
		return err
	}
	if settings.Paused {
		return domain.ErrPaused
	}
	return nil
}

func (im *offerUsecaseImpl) MakeOffer(c ctx.Ctx, params *offer.MakeOfferParams) (int64, error) {
	if err := im.ensureNotPaused(c); err != nil {
		return 0, err
	}

	if params.Quantity < 1 {
		return 0, domain.ErrBadParamInput
	}
	if params.TokenType != domain.TokenType721 && params.TokenType != domain.TokenType1155 {
		return 0, domain.ErrBadParamInput
	}
	if params.TokenType == domain.TokenType721 && params.Quantity != 1 {
		return 0, domain.ErrQuantityExceeded
	}

	totalPrice, err := domain.ParseAmount(params.TotalPrice)
	if err != nil || !totalPrice.IsPositive() {
		return 0, domain.ErrBadParamInput
	}

	now := time.Now()
	expiration := time.Unix(params.ExpirationTimestamp, 0)
	if !expiration.After(now) {
		return 0, domain.ErrOutsideWindow
	}

	solvent, err := im.funds.CheckBalanceAndAllowance(c, params.Offeror, params.Currency, totalPrice)
	if err != nil {
		return 0, err
	}
	if !solvent {
		return 0, domain.ErrInsufficientFunds
	}

	offerId, err := im.idCounter.Next(c, domain.TableOffers)
	if err != nil {
		return 0, err
	}

	o := &offer.Offer{
		OfferId:             offerId,
		Offeror:             params.Offeror,
		AssetContract:       params.AssetContract,
		TokenId:             params.TokenId,
		TokenType:           params.TokenType,
		Quantity:            params.Quantity,
		Currency:            params.Currency,
		TotalPrice:          params.TotalPrice,
		ExpirationTimestamp: expiration,
		Status:              offer.StatusCreated,
		CreatedAt:           now,
	}

	if err := im.repo.Create(c, o); err != nil {
		return 0, err
	}

	// funds are escrowed up front so acceptance never depends on the offeror
	if err := im.funds.Transfer(c, o.Currency, o.Offeror, im.escrow, totalPrice); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to funds.Transfer into escrow")
		if removeErr := im.repo.Remove(c, offerId); removeErr != nil {
			c.WithFields(log.Fields{
				"err":     removeErr,
				"offerId": offerId,
			}).Error("failed to repo.Remove after escrow failure")
		}
		return 0, err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeCreateOffer,
		EntityId: offerId,
		Actor:    params.Offeror.ToLower(),
		Quantity: params.Quantity,
		Price:    params.TotalPrice,
		Currency: params.Currency.ToLower(),
		Payload:  o,
	})

	return offerId, nil
}

// CancelOffer refunds the escrowed funds. It stays available after the offer
// expires, since expiry alone never moves funds.
// revertStatus writes the pre-operation status back after a failed transfer
// so the call leaves no partial state behind.
func (im *offerUsecaseImpl) revertStatus(c ctx.Ctx, offerId int64, prior offer.Status) {
	if err := im.repo.Patch(c, offerId, &offer.Patchable{Status: &prior}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to repo.Patch reverting offer status")
	}
}

func (im *offerUsecaseImpl) CancelOffer(c ctx.Ctx, actor domain.Address, offerId int64) error {
	o, err := im.repo.FindOne(c, offerId)
	if err != nil {
		return err
	}
	if !o.Offeror.Equals(actor) {
		return domain.ErrNotAuthorized
	}
	if o.Status != offer.StatusCreated {
		return domain.ErrInvalidStatus
	}

	status := offer.StatusCancelled
	if err := im.repo.Patch(c, offerId, &offer.Patchable{Status: &status}); err != nil {
		return err
	}

	totalPrice, err := domain.ParseAmount(o.TotalPrice)
	if err != nil {
		return err
	}
	if err := im.funds.Transfer(c, o.Currency, im.escrow, o.Offeror, totalPrice); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to funds.Transfer refund")
		im.revertStatus(c, offerId, o.Status)
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeCancelOffer,
		EntityId: offerId,
		Actor:    actor.ToLower(),
	})

	return nil
}

func (im *offerUsecaseImpl) AcceptOffer(c ctx.Ctx, actor domain.Address, offerId int64) error {
	if err := im.ensureNotPaused(c); err != nil {
		return err
	}

	o, err := im.repo.FindOne(c, offerId)
	if err != nil {
		return err
	}
	if o.Status != offer.StatusCreated {
		return domain.ErrInvalidStatus
	}
	if o.IsExpiredAt(time.Now()) {
		return domain.ErrOfferExpired
	}

	owned, err := im.custody.VerifyOwnershipAndApproval(c, actor, o.AssetContract, o.TokenId, o.TokenType, o.Quantity)
	if err != nil {
		return err
	}
	if !owned {
		return domain.ErrAssetNotOwned
	}

	totalPrice, err := domain.ParseAmount(o.TotalPrice)
	if err != nil {
		return err
	}
	splits, err := im.fees.Splits(c, o.AssetContract, o.TokenId, o.Currency, totalPrice)
	if err != nil {
		return err
	}

	status := offer.StatusAccepted
	if err := im.repo.Patch(c, offerId, &offer.Patchable{Status: &status}); err != nil {
		return err
	}

	if err := im.custody.Transfer(c, o.AssetContract, o.TokenId, o.TokenType, actor, o.Offeror, o.Quantity); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to custody.Transfer")
		im.revertStatus(c, offerId, o.Status)
		return err
	}

	sellerProceeds := totalPrice
	for _, split := range splits {
		if err := im.funds.Transfer(c, o.Currency, im.escrow, split.Recipient, split.Amount); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"offerId":   offerId,
				"recipient": split.Recipient,
			}).Error("failed to funds.Transfer fee split")
			im.revertStatus(c, offerId, o.Status)
			return err
		}
		sellerProceeds = sellerProceeds.Sub(split.Amount)
	}
	if err := im.funds.Transfer(c, o.Currency, im.escrow, actor, sellerProceeds); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to funds.Transfer seller proceeds")
		im.revertStatus(c, offerId, o.Status)
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:         marketplace.ActivityTypeAcceptOffer,
		EntityId:     offerId,
		Actor:        actor.ToLower(),
		Counterparty: o.Offeror,
		Quantity:     o.Quantity,
		Price:        o.TotalPrice,
		Currency:     o.Currency,
	})

	return nil
}

func (im *offerUsecaseImpl) GetOffer(c ctx.Ctx, offerId int64) (*offer.Offer, error) {
	return im.repo.FindOne(c, offerId)
}

func (im *offerUsecaseImpl) GetAllOffers(c ctx.Ctx, startId, endId int64) ([]*offer.Offer, error) {
	return im.repo.FindAll(c, offer.WithIdRange(startId, endId), offer.WithSort(domain.SortDirAsc))
}

// GetAllValidOffers returns open offers that have not yet expired. Expired
// entries are only skipped, never mutated.
func (im *offerUsecaseImpl) GetAllValidOffers(c ctx.Ctx, startId, endId int64) ([]*offer.Offer, error) {
	offers, err := im.repo.FindAll(c,
		offer.WithIdRange(startId, endId),
		offer.WithStatus(offer.StatusCreated),
		offer.WithSort(domain.SortDirAsc),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := []*offer.Offer{}
	for _, o := range offers {
		if o.IsExpiredAt(now) {
			continue
		}
		res = append(res, o)
	}
	return res, nil
}

func (im *offerUsecaseImpl) GetTotalCount(c ctx.Ctx) (int, error) {
	return im.repo.Count(c)
}

func (im *offerUsecaseImpl) emitActivity(c ctx.Ctx, activity *marketplace.Activity) {
	activity.ActivityId = uuid.NewString()
	activity.EntityKind = marketplace.EntityKindOffer
	activity.Time = time.Now()
	if err := im.activities.Insert(c, activity); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"activity": *activity,
		}).Error("failed to activities.Insert")
	}
}
