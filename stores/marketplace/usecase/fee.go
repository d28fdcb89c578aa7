package usecase

import (
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
)

type feeCalculatorImpl struct {
	settings  marketplace.SettingsUsecase
	royalties marketplace.RoyaltyEngine
}

// NewFeeCalculator builds the fee schedule for a sale from the platform fee
// settings and the royalty engine. royalties may be nil.
func NewFeeCalculator(settings marketplace.SettingsUsecase, royalties marketplace.RoyaltyEngine) marketplace.FeeCalculator {
	return &feeCalculatorImpl{settings, royalties}
}

func (im *feeCalculatorImpl) Splits(c ctx.Ctx, assetContract domain.Address, tokenId domain.TokenId, currency domain.Address, price decimal.Decimal) ([]marketplace.Split, error) {
	splits := []marketplace.Split{}

	settings, err := im.settings.Get(c)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to settings.Get")
		return nil, err
	}

	if settings.PlatformFeeBps > 0 && !settings.PlatformFeeRecipient.IsEmpty() {
		fee := price.Mul(decimal.NewFromInt(settings.PlatformFeeBps)).Div(decimal.NewFromInt(marketplace.MaxBps))
		splits = append(splits, marketplace.Split{
			Recipient: settings.PlatformFeeRecipient,
			Amount:    fee,
		})
	}

	if im.royalties != nil {
		royaltySplits, err := im.royalties.RoyaltiesFor(c, assetContract, tokenId, price)
		if err != nil {
			c.WithFields(log.Fields{
				"err":           err,
				"assetContract": assetContract,
				"tokenId":       tokenId,
			}).Error("failed to royalties.RoyaltiesFor")
			return nil, err
		}
		splits = append(splits, royaltySplits...)
	}

	total := decimal.Zero
	for _, split := range splits {
		total = total.Add(split.Amount)
	}
	if total.GreaterThan(price) {
		return nil, xerrors.Errorf("fee splits %s exceed sale price %s", total, price)
	}

	return splits, nil
}
