package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/auction"
	"github.com/x-xyz/marketplace/domain/marketplace"
)

const (
	startTimeGrace = 30 * time.Minute

	// applied when the creator does not set their own buffers
	defaultTimeBufferInSeconds = int64(900)
	defaultBidBufferBps        = int64(500)
)

type auctionUsecaseImpl struct {
	repo       auction.Repo
	idCounter  marketplace.IdCounterRepo
	activities marketplace.ActivityRepo
	settings   marketplace.SettingsUsecase
	custody    marketplace.TokenCustody
	funds      marketplace.FundTransferer
	fees       marketplace.FeeCalculator
	escrow     domain.Address
}

type AuctionUsecaseCfg struct {
	Repo       auction.Repo
	IdCounter  marketplace.IdCounterRepo
	Activities marketplace.ActivityRepo
	Settings   marketplace.SettingsUsecase
	Custody    marketplace.TokenCustody
	Funds      marketplace.FundTransferer
	Fees       marketplace.FeeCalculator

	// EscrowAddress holds auctioned tokens and escrowed bids until settlement
	EscrowAddress domain.Address
}

func NewAuctionUsecase(cfg *AuctionUsecaseCfg) auction.Usecase {
	return &auctionUsecaseImpl{
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

func (im *auctionUsecaseImpl) ensureNotPaused(c ctx.Ctx) error {
	settings, err := im.settings.Get(c)
	if err != nil {
		return err
	}
	if settings.Paused {
		return domain.ErrPaused
	}
	return nil
}

func (im *auctionUsecaseImpl) CreateAuction(c ctx.Ctx, params *auction.CreateAuctionParams) (int64, error) {
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

	minimum, err := domain.ParseAmount(params.MinimumBidAmount)
	if err != nil || !minimum.IsPositive() {
		return 0, domain.ErrBadParamInput
	}
	if params.BuyoutBidAmount != "" {
		buyout, err := domain.ParseAmount(params.BuyoutBidAmount)
		if err != nil || buyout.LessThan(minimum) {
			return 0, domain.ErrBadParamInput
		}
	}

	timeBuffer := params.TimeBufferInSeconds
	if timeBuffer == 0 {
		timeBuffer = defaultTimeBufferInSeconds
	}
	bidBuffer := params.BidBufferBps
	if bidBuffer == 0 {
		bidBuffer = defaultBidBufferBps
	}
	if timeBuffer < 0 || bidBuffer < 0 || bidBuffer > marketplace.MaxBps {
		return 0, domain.ErrBadParamInput
	}

	now := time.Now()
	startTime := time.Unix(params.StartTime, 0)
	endTime := time.Unix(params.EndTime, 0)
	if !endTime.After(startTime) || !endTime.After(now) {
		return 0, domain.ErrOutsideWindow
	}
	if startTime.Before(now.Add(-startTimeGrace)) {
		return 0, domain.ErrOutsideWindow
	}

	owned, err := im.custody.VerifyOwnershipAndApproval(c, params.Creator, params.AssetContract, params.TokenId, params.TokenType, params.Quantity)
	if err != nil {
		return 0, err
	}
	if !owned {
		return 0, domain.ErrAssetNotOwned
	}

	auctionId, err := im.idCounter.Next(c, domain.TableAuctions)
	if err != nil {
		return 0, err
	}

	a := &auction.Auction{
		AuctionId: auctionId,
		Creator:   params.Creator,
		Terms: auction.Terms{
			AssetContract:       params.AssetContract,
			TokenId:             params.TokenId,
			TokenType:           params.TokenType,
			Quantity:            params.Quantity,
			Currency:            params.Currency,
			MinimumBidAmount:    params.MinimumBidAmount,
			BuyoutBidAmount:     params.BuyoutBidAmount,
			TimeBufferInSeconds: timeBuffer,
			BidBufferBps:        bidBuffer,
			StartTime:           startTime,
		},
		State: auction.State{
			EndTime: endTime,
			Status:  auction.StatusCreated,
		},
		CreatedAt: now,
	}

	if err := im.repo.Create(c, a); err != nil {
		return 0, err
	}

	// tokens are escrowed up front so settlement never depends on the creator
	if err := im.custody.Transfer(c, a.AssetContract, a.TokenId, a.TokenType, a.Creator, im.escrow, a.Quantity); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to custody.Transfer into escrow")
		if removeErr := im.repo.Remove(c, auctionId); removeErr != nil {
			c.WithFields(log.Fields{
				"err":       removeErr,
				"auctionId": auctionId,
			}).Error("failed to repo.Remove after escrow failure")
		}
		return 0, err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeCreateAuction,
		EntityId: auctionId,
		Actor:    params.Creator.ToLower(),
		Quantity: params.Quantity,
		Price:    params.MinimumBidAmount,
		Currency: params.Currency.ToLower(),
		Payload:  a,
	})

	return auctionId, nil
}

func (im *auctionUsecaseImpl) CancelAuction(c ctx.Ctx, actor domain.Address, auctionId int64) error {
	a, err := im.repo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	if !a.Creator.Equals(actor) {
		return domain.ErrNotAuthorized
	}
	if a.State.Status != auction.StatusCreated {
		return domain.ErrInvalidStatus
	}
	if a.HasBid() {
		return domain.ErrAuctionHasBids
	}

	status := auction.StatusCancelled
	if err := im.repo.Patch(c, auctionId, &auction.Patchable{Status: &status}); err != nil {
		return err
	}

	if err := im.custody.Transfer(c, a.AssetContract, a.TokenId, a.TokenType, im.escrow, a.Creator, a.Quantity); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to custody.Transfer out of escrow")
		im.revertAuction(c, a)
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     marketplace.ActivityTypeCancelAuction,
		EntityId: auctionId,
		Actor:    actor.ToLower(),
	})

	return nil
}

func (im *auctionUsecaseImpl) Bid(c ctx.Ctx, params *auction.BidParams) error {
	if err := im.ensureNotPaused(c); err != nil {
		return err
	}

	a, err := im.repo.FindOne(c, params.AuctionId)
	if err != nil {
		return err
	}
	if a.State.Status != auction.StatusCreated {
		return domain.ErrInvalidStatus
	}

	now := time.Now()
	if now.Before(a.StartTime) || a.IsExpiredAt(now) {
		return domain.ErrOutsideWindow
	}

	bidAmount, err := domain.ParseAmount(params.BidAmount)
	if err != nil || !bidAmount.IsPositive() {
		return domain.ErrBadParamInput
	}

	// a bid at or above the buyout price is clamped to it and ends the auction
	isBuyout := false
	if a.BuyoutBidAmount != "" {
		buyout, err := domain.ParseAmount(a.BuyoutBidAmount)
		if err != nil {
			return err
		}
		if !bidAmount.LessThan(buyout) {
			bidAmount = buyout
			isBuyout = true
		}
	}

	if !isBuyout {
		ok, err := a.IsNewWinningBid(bidAmount)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrBidTooLow
		}
	}

	solvent, err := im.funds.CheckBalanceAndAllowance(c, params.Bidder, a.Currency, bidAmount)
	if err != nil {
		return err
	}
	if !solvent {
		return domain.ErrInsufficientFunds
	}

	newBid := &auction.Bid{
		Bidder:    params.Bidder.ToLower(),
		BidAmount: bidAmount.String(),
		BidTime:   now,
	}
	patch := &auction.Patchable{WinningBid: newBid}

	activityType := marketplace.ActivityTypePlaceBid
	if isBuyout {
		// close the window and finalize immediately so only settlement remains
		patch.EndTime = &now
		completed := auction.StatusCompleted
		patch.Status = &completed
		activityType = marketplace.ActivityTypeBuyout
	} else if remaining := a.State.EndTime.Sub(now); remaining < time.Duration(a.TimeBufferInSeconds)*time.Second {
		// anti-sniping extension, never shortens the window
		extended := now.Add(time.Duration(a.TimeBufferInSeconds) * time.Second)
		if extended.After(a.State.EndTime) {
			patch.EndTime = &extended
		}
	}

	prevBid := a.State.WinningBid
	if err := im.repo.Patch(c, params.AuctionId, patch); err != nil {
		return err
	}

	if err := im.funds.Transfer(c, a.Currency, params.Bidder, im.escrow, bidAmount); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": params.AuctionId,
		}).Error("failed to funds.Transfer into escrow")
		im.revertAuction(c, a)
		return err
	}

	if prevBid != nil {
		prevAmount, err := domain.ParseAmount(prevBid.BidAmount)
		if err != nil {
			return err
		}
		if err := im.funds.Transfer(c, a.Currency, im.escrow, prevBid.Bidder, prevAmount); err != nil {
			c.WithFields(log.Fields{
				"err":        err,
				"auctionId":  params.AuctionId,
				"prevBidder": prevBid.Bidder,
			}).Error("failed to funds.Transfer refund")
			im.revertAuction(c, a)
			if rerr := im.funds.Transfer(c, a.Currency, im.escrow, params.Bidder, bidAmount); rerr != nil {
				c.WithFields(log.Fields{
					"err":       rerr,
					"auctionId": params.AuctionId,
				}).Error("failed to funds.Transfer returning escrowed bid")
			}
			return err
		}
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:     activityType,
		EntityId: params.AuctionId,
		Actor:    params.Bidder.ToLower(),
		Quantity: a.Quantity,
		Price:    bidAmount.String(),
		Currency: a.Currency,
	})

	return nil
}

// revertAuction writes the pre-operation document back after a failed
// transfer so the call leaves no partial state behind.
func (im *auctionUsecaseImpl) revertAuction(c ctx.Ctx, a *auction.Auction) {
	if err := im.repo.Update(c, a.AuctionId, a); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": a.AuctionId,
		}).Error("failed to repo.Update reverting auction")
	}
}

// CollectTokens releases the escrowed tokens to the winning bidder after the
// auction has closed. Anyone may trigger it; the transfer target is fixed.
func (im *auctionUsecaseImpl) CollectTokens(c ctx.Ctx, actor domain.Address, auctionId int64) error {
	a, err := im.repo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	if a.State.Status == auction.StatusCancelled {
		return domain.ErrInvalidStatus
	}
	if !a.IsExpiredAt(time.Now()) {
		return domain.ErrAuctionLive
	}
	if a.State.PaidOutTokens {
		return domain.ErrAlreadyPaidOut
	}

	// with zero bids the creator reclaims the escrowed asset through the
	// same path
	recipient := a.Creator
	if a.HasBid() {
		recipient = a.State.WinningBid.Bidder
	}

	paid := true
	status := auction.StatusCompleted
	if err := im.repo.Patch(c, auctionId, &auction.Patchable{PaidOutTokens: &paid, Status: &status}); err != nil {
		return err
	}

	if err := im.custody.Transfer(c, a.AssetContract, a.TokenId, a.TokenType, im.escrow, recipient, a.Quantity); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to custody.Transfer out of escrow")
		im.revertAuction(c, a)
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:         marketplace.ActivityTypeCollectTokens,
		EntityId:     auctionId,
		Actor:        actor.ToLower(),
		Counterparty: recipient,
		Quantity:     a.Quantity,
	})

	return nil
}

// CollectPayout releases the escrowed winning bid to the creator, minus fees.
func (im *auctionUsecaseImpl) CollectPayout(c ctx.Ctx, actor domain.Address, auctionId int64) error {
	a, err := im.repo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	if a.State.Status == auction.StatusCancelled {
		return domain.ErrInvalidStatus
	}
	if !a.IsExpiredAt(time.Now()) {
		return domain.ErrAuctionLive
	}
	if !a.HasBid() {
		return domain.ErrNoWinningBid
	}
	if a.State.PaidOutBidAmount {
		return domain.ErrAlreadyPaidOut
	}

	winningAmount, err := domain.ParseAmount(a.State.WinningBid.BidAmount)
	if err != nil {
		return err
	}

	splits, err := im.fees.Splits(c, a.AssetContract, a.TokenId, a.Currency, winningAmount)
	if err != nil {
		return err
	}

	paid := true
	status := auction.StatusCompleted
	if err := im.repo.Patch(c, auctionId, &auction.Patchable{PaidOutBidAmount: &paid, Status: &status}); err != nil {
		return err
	}

	creatorProceeds := winningAmount
	for _, split := range splits {
		if err := im.funds.Transfer(c, a.Currency, im.escrow, split.Recipient, split.Amount); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"auctionId": auctionId,
				"recipient": split.Recipient,
			}).Error("failed to funds.Transfer fee split")
			im.revertAuction(c, a)
			return err
		}
		creatorProceeds = creatorProceeds.Sub(split.Amount)
	}
	if err := im.funds.Transfer(c, a.Currency, im.escrow, a.Creator, creatorProceeds); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to funds.Transfer creator proceeds")
		im.revertAuction(c, a)
		return err
	}

	im.emitActivity(c, &marketplace.Activity{
		Type:         marketplace.ActivityTypeCollectPayout,
		EntityId:     auctionId,
		Actor:        actor.ToLower(),
		Counterparty: a.Creator,
		Price:        winningAmount.String(),
		Currency:     a.Currency,
	})

	return nil
}

func (im *auctionUsecaseImpl) IsAuctionExpired(c ctx.Ctx, auctionId int64) (bool, error) {
	a, err := im.repo.FindOne(c, auctionId)
	if err != nil {
		return false, err
	}
	return a.IsExpiredAt(time.Now()), nil
}

func (im *auctionUsecaseImpl) GetAuction(c ctx.Ctx, auctionId int64) (*auction.Auction, error) {
	return im.repo.FindOne(c, auctionId)
}

func (im *auctionUsecaseImpl) GetAllAuctions(c ctx.Ctx, startId, endId int64) ([]*auction.Auction, error) {
	return im.repo.FindAll(c, auction.WithIdRange(startId, endId), auction.WithSort(domain.SortDirAsc))
}

// GetAllValidAuctions returns auctions still accepting bids. Expired entries
// are only skipped, never mutated.
func (im *auctionUsecaseImpl) GetAllValidAuctions(c ctx.Ctx, startId, endId int64) ([]*auction.Auction, error) {
	auctions, err := im.repo.FindAll(c,
		auction.WithIdRange(startId, endId),
		auction.WithStatus(auction.StatusCreated),
		auction.WithSort(domain.SortDirAsc),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := []*auction.Auction{}
	for _, a := range auctions {
		if a.IsExpiredAt(now) {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

func (im *auctionUsecaseImpl) GetWinningBid(c ctx.Ctx, auctionId int64) (*auction.Bid, error) {
	a, err := im.repo.FindOne(c, auctionId)
	if err != nil {
		return nil, err
	}
	if !a.HasBid() {
		return nil, domain.ErrNoWinningBid
	}
	return a.State.WinningBid, nil
}

func (im *auctionUsecaseImpl) GetTotalCount(c ctx.Ctx) (int, error) {
	return im.repo.Count(c)
}

func (im *auctionUsecaseImpl) emitActivity(c ctx.Ctx, activity *marketplace.Activity) {
	activity.ActivityId = uuid.NewString()
	activity.EntityKind = marketplace.EntityKindAuction
	activity.Time = time.Now()
	if err := im.activities.Insert(c, activity); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"activity": *activity,
		}).Error("failed to activities.Insert")
	}
}
