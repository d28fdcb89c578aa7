package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
	mMarketplace "github.com/x-xyz/marketplace/domain/marketplace/mocks"
	"github.com/x-xyz/marketplace/domain/offer"
	mOffer "github.com/x-xyz/marketplace/domain/offer/mocks"
	mkUsecase "github.com/x-xyz/marketplace/stores/marketplace/usecase"
)

var (
	offeror   = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
	owner     = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	stranger  = domain.Address("0x1a01ecd2263a9d5b5967667e508ea22db478bc4b")
	erc20     = domain.Address("0x07fe9ffd85b54a3a18467d3b5e91a55ecc52a268")
	erc721    = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	escrow    = domain.Address("0x2e9e733cb0394aace1226e34313f12b0764be65a")
	feeWallet = domain.Address("0x54a769173d97432a48371b022709117c090298e3")
)

type offerSuite struct {
	suite.Suite

	repo       *mOffer.Repo
	idCounter  *mMarketplace.IdCounterRepo
	activities *mMarketplace.ActivityRepo
	settings   *mMarketplace.SettingsRepo
	custody    *mMarketplace.TokenCustody
	funds      *mMarketplace.FundTransferer
	fees       *mMarketplace.FeeCalculator

	im offer.Usecase
}

func TestOfferSuite(t *testing.T) {
	suite.Run(t, new(offerSuite))
}

func (s *offerSuite) SetupTest() {
	s.repo = &mOffer.Repo{}
	s.idCounter = &mMarketplace.IdCounterRepo{}
	s.activities = &mMarketplace.ActivityRepo{}
	s.settings = &mMarketplace.SettingsRepo{}
	s.custody = &mMarketplace.TokenCustody{}
	s.funds = &mMarketplace.FundTransferer{}
	s.fees = &mMarketplace.FeeCalculator{}

	s.im = NewOfferUsecase(&OfferUsecaseCfg{
		Repo:          s.repo,
		IdCounter:     s.idCounter,
		Activities:    s.activities,
		Settings:      mkUsecase.NewSettingsUsecase(s.settings),
		Custody:       s.custody,
		Funds:         s.funds,
		Fees:          s.fees,
		EscrowAddress: escrow,
	})
}

func (s *offerSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.idCounter.AssertExpectations(s.T())
	s.custody.AssertExpectations(s.T())
	s.funds.AssertExpectations(s.T())
	s.fees.AssertExpectations(s.T())
}

func (s *offerSuite) expectSettings(paused bool) {
	s.settings.On("Get", mock.Anything).Return(&marketplace.Settings{Paused: paused}, nil)
}

func (s *offerSuite) mockOffer() *offer.Offer {
	now := time.Now()
	return &offer.Offer{
		OfferId:             5,
		Offeror:             offeror,
		AssetContract:       erc721,
		TokenId:             domain.TokenId("9"),
		TokenType:           domain.TokenType721,
		Quantity:            1,
		Currency:            erc20,
		TotalPrice:          "50",
		ExpirationTimestamp: now.Add(time.Hour),
		Status:              offer.StatusCreated,
		CreatedAt:           now.Add(-time.Hour),
	}
}

func amountEq(v string) interface{} {
	want, _ := decimal.NewFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func (s *offerSuite) TestMakeOfferEscrowsFunds() {
	s.expectSettings(false)
	now := time.Now()

	params := &offer.MakeOfferParams{
		Offeror:             offeror,
		AssetContract:       erc721,
		TokenId:             domain.TokenId("9"),
		TokenType:           domain.TokenType721,
		Quantity:            1,
		Currency:            erc20,
		TotalPrice:          "50",
		ExpirationTimestamp: now.Add(time.Hour).Unix(),
	}

	s.funds.On("CheckBalanceAndAllowance", mock.Anything, offeror, erc20, amountEq("50")).Return(true, nil).Once()
	s.idCounter.On("Next", mock.Anything, domain.TableOffers).Return(int64(0), nil).Once()
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(o *offer.Offer) bool {
		return o.OfferId == 0 && o.Status == offer.StatusCreated
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, offeror, escrow, amountEq("50")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	offerId, err := s.im.MakeOffer(ctx.Background(), params)
	s.NoError(err)
	s.Equal(int64(0), offerId)
}

func (s *offerSuite) TestMakeOfferInsufficientFunds() {
	s.expectSettings(false)
	now := time.Now()

	params := &offer.MakeOfferParams{
		Offeror:             offeror,
		AssetContract:       erc721,
		TokenId:             domain.TokenId("9"),
		TokenType:           domain.TokenType721,
		Quantity:            1,
		Currency:            erc20,
		TotalPrice:          "50",
		ExpirationTimestamp: now.Add(time.Hour).Unix(),
	}

	s.funds.On("CheckBalanceAndAllowance", mock.Anything, offeror, erc20, amountEq("50")).Return(false, nil).Once()

	_, err := s.im.MakeOffer(ctx.Background(), params)
	s.ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *offerSuite) TestMakeOfferEscrowFailureRollsBack() {
	s.expectSettings(false)
	now := time.Now()

	params := &offer.MakeOfferParams{
		Offeror:             offeror,
		AssetContract:       erc721,
		TokenId:             domain.TokenId("9"),
		TokenType:           domain.TokenType721,
		Quantity:            1,
		Currency:            erc20,
		TotalPrice:          "50",
		ExpirationTimestamp: now.Add(time.Hour).Unix(),
	}

	s.funds.On("CheckBalanceAndAllowance", mock.Anything, offeror, erc20, amountEq("50")).Return(true, nil).Once()
	s.idCounter.On("Next", mock.Anything, domain.TableOffers).Return(int64(6), nil).Once()
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, offeror, escrow, amountEq("50")).
		Return(domain.ErrInsufficientFunds).Once()
	s.repo.On("Remove", mock.Anything, int64(6)).Return(nil).Once()

	_, err := s.im.MakeOffer(ctx.Background(), params)
	s.ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *offerSuite) TestCancelOfferRefunds() {
	o := s.mockOffer()

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.MatchedBy(func(p *offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusCancelled
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, offeror, amountEq("50")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CancelOffer(ctx.Background(), offeror, 5)
	s.NoError(err)
}

func (s *offerSuite) TestCancelOfferNotOfferor() {
	o := s.mockOffer()

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()

	err := s.im.CancelOffer(ctx.Background(), stranger, 5)
	s.ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *offerSuite) TestAcceptOffer() {
	s.expectSettings(false)
	o := s.mockOffer()

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, owner, erc721, domain.TokenId("9"), domain.TokenType721, int64(1)).
		Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc721, domain.TokenId("9"), erc20, amountEq("50")).
		Return([]marketplace.Split{{Recipient: feeWallet, Amount: decimal.NewFromInt(2)}}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.MatchedBy(func(p *offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusAccepted
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, owner, offeror, int64(1)).
		Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, feeWallet, amountEq("2")).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, owner, amountEq("48")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.AcceptOffer(ctx.Background(), owner, 5)
	s.NoError(err)
}

func (s *offerSuite) TestAcceptCancelledOfferRejected() {
	s.expectSettings(false)
	o := s.mockOffer()
	o.Status = offer.StatusCancelled

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()

	err := s.im.AcceptOffer(ctx.Background(), owner, 5)
	s.ErrorIs(err, domain.ErrInvalidStatus)
}

func (s *offerSuite) TestAcceptExpiredOfferRejected() {
	s.expectSettings(false)
	o := s.mockOffer()
	o.ExpirationTimestamp = time.Now().Add(-time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()

	err := s.im.AcceptOffer(ctx.Background(), owner, 5)
	s.ErrorIs(err, domain.ErrOfferExpired)
}

func (s *offerSuite) TestAcceptOfferNotOwner() {
	s.expectSettings(false)
	o := s.mockOffer()

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, stranger, erc721, domain.TokenId("9"), domain.TokenType721, int64(1)).
		Return(false, nil).Once()

	err := s.im.AcceptOffer(ctx.Background(), stranger, 5)
	s.ErrorIs(err, domain.ErrAssetNotOwned)
}

func (s *offerSuite) TestCancelExpiredOfferStillRefunds() {
	o := s.mockOffer()
	o.ExpirationTimestamp = time.Now().Add(-time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.Anything).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, offeror, amountEq("50")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CancelOffer(ctx.Background(), offeror, 5)
	s.NoError(err)
}

func (s *offerSuite) TestGetAllValidOffersSkipsExpired() {
	live := s.mockOffer()
	expired := s.mockOffer()
	expired.OfferId = 6
	expired.ExpirationTimestamp = time.Now().Add(-time.Minute)

	s.repo.On("FindAll", mock.Anything,
		mock.AnythingOfType("offer.FindAllOptionsFunc"),
		mock.AnythingOfType("offer.FindAllOptionsFunc"),
		mock.AnythingOfType("offer.FindAllOptionsFunc")).
		Return([]*offer.Offer{live, expired}, nil).Once()

	res, err := s.im.GetAllValidOffers(ctx.Background(), 0, 100)
	s.NoError(err)
	s.Len(res, 1)
	s.Equal(int64(5), res[0].OfferId)
}

func (s *offerSuite) TestCancelOfferRefundFailureRestoresStatus() {
	o := s.mockOffer()

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.MatchedBy(func(p *offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusCancelled
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, offeror, amountEq("50")).
		Return(errors.New("rpc unavailable")).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.MatchedBy(func(p *offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusCreated
	})).Return(nil).Once()

	err := s.im.CancelOffer(ctx.Background(), offeror, 5)
	s.Error(err)
}

func (s *offerSuite) TestAcceptOfferTransferFailureRestoresStatus() {
	s.expectSettings(false)
	o := s.mockOffer()

	s.repo.On("FindOne", mock.Anything, int64(5)).Return(o, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, owner, erc721, domain.TokenId("9"), domain.TokenType721, int64(1)).
		Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc721, domain.TokenId("9"), erc20, amountEq("50")).
		Return([]marketplace.Split{}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.MatchedBy(func(p *offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusAccepted
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, owner, offeror, int64(1)).
		Return(errors.New("rpc unavailable")).Once()
	s.repo.On("Patch", mock.Anything, int64(5), mock.MatchedBy(func(p *offer.Patchable) bool {
		return p.Status != nil && *p.Status == offer.StatusCreated
	})).Return(nil).Once()

	err := s.im.AcceptOffer(ctx.Background(), owner, 5)
	s.Error(err)
}
