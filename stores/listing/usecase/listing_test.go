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
	"github.com/x-xyz/marketplace/domain/listing"
	mListing "github.com/x-xyz/marketplace/domain/listing/mocks"
	"github.com/x-xyz/marketplace/domain/marketplace"
	mMarketplace "github.com/x-xyz/marketplace/domain/marketplace/mocks"
	mkUsecase "github.com/x-xyz/marketplace/stores/marketplace/usecase"
)

var (
	seller    = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	buyer     = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
	stranger  = domain.Address("0x1a01ecd2263a9d5b5967667e508ea22db478bc4b")
	erc20     = domain.Address("0x07fe9ffd85b54a3a18467d3b5e91a55ecc52a268")
	altErc20  = domain.Address("0xb4fbf271143f4fbf7b91a5ded31805e42b2208d6")
	erc721    = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	erc1155   = domain.Address("0x23c0221b2b66071afdcce502a103f18ec2666a12")
	feeWallet = domain.Address("0x54a769173d97432a48371b022709117c090298e3")
)

type listingSuite struct {
	suite.Suite

	repo       *mListing.Repo
	idCounter  *mMarketplace.IdCounterRepo
	activities *mMarketplace.ActivityRepo
	settings   *mMarketplace.SettingsRepo
	custody    *mMarketplace.TokenCustody
	funds      *mMarketplace.FundTransferer
	fees       *mMarketplace.FeeCalculator

	im listing.Usecase
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupTest() {
	s.repo = &mListing.Repo{}
	s.idCounter = &mMarketplace.IdCounterRepo{}
	s.activities = &mMarketplace.ActivityRepo{}
	s.settings = &mMarketplace.SettingsRepo{}
	s.custody = &mMarketplace.TokenCustody{}
	s.funds = &mMarketplace.FundTransferer{}
	s.fees = &mMarketplace.FeeCalculator{}

	s.im = NewListingUsecase(&ListingUsecaseCfg{
		Repo:       s.repo,
		IdCounter:  s.idCounter,
		Activities: s.activities,
		Settings:   mkUsecase.NewSettingsUsecase(s.settings),
		Custody:    s.custody,
		Funds:      s.funds,
		Fees:       s.fees,
	})
}

func (s *listingSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.idCounter.AssertExpectations(s.T())
	s.custody.AssertExpectations(s.T())
	s.funds.AssertExpectations(s.T())
	s.fees.AssertExpectations(s.T())
}

func (s *listingSuite) expectSettings(paused bool) {
	s.settings.On("Get", mock.Anything).Return(&marketplace.Settings{Paused: paused}, nil)
}

func (s *listingSuite) mockListing() *listing.Listing {
	now := time.Now()
	return &listing.Listing{
		ListingId:         7,
		Creator:           seller,
		AssetContract:     erc1155,
		TokenId:           domain.TokenId("42"),
		TokenType:         domain.TokenType1155,
		Quantity:          10,
		Currency:          erc20,
		PricePerToken:     "2",
		StartTime:         now.Add(-time.Hour),
		EndTime:           now.Add(time.Hour),
		Status:            listing.StatusCreated,
		ApprovedBuyers:    map[string]bool{},
		CurrencyOverrides: map[string]string{},
		CreatedAt:         now.Add(-time.Hour),
		UpdatedAt:         now.Add(-time.Hour),
	}
}

func amountEq(v string) interface{} {
	want, _ := decimal.NewFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func (s *listingSuite) TestCreateListing() {
	s.expectSettings(false)
	now := time.Now()

	params := &listing.CreateListingParams{
		Creator:       seller,
		AssetContract: erc1155,
		TokenId:       domain.TokenId("42"),
		TokenType:     domain.TokenType1155,
		Quantity:      10,
		Currency:      erc20,
		PricePerToken: "2",
		StartTime:     now.Unix(),
		EndTime:       now.Add(24 * time.Hour).Unix(),
	}

	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(10)).
		Return(true, nil).Once()
	s.idCounter.On("Next", mock.Anything, domain.TableListings).Return(int64(0), nil).Once()
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.ListingId == 0 && l.Status == listing.StatusCreated && l.Quantity == 10
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	listingId, err := s.im.CreateListing(ctx.Background(), params)
	s.NoError(err)
	s.Equal(int64(0), listingId)
}

func (s *listingSuite) TestCreateListingNotOwned() {
	s.expectSettings(false)
	now := time.Now()

	params := &listing.CreateListingParams{
		Creator:       seller,
		AssetContract: erc721,
		TokenId:       domain.TokenId("1"),
		TokenType:     domain.TokenType721,
		Quantity:      1,
		Currency:      erc20,
		PricePerToken: "5",
		StartTime:     now.Unix(),
		EndTime:       now.Add(time.Hour).Unix(),
	}

	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc721, domain.TokenId("1"), domain.TokenType721, int64(1)).
		Return(false, nil).Once()

	_, err := s.im.CreateListing(ctx.Background(), params)
	s.ErrorIs(err, domain.ErrAssetNotOwned)
}

func (s *listingSuite) TestCreateListingPaused() {
	s.expectSettings(true)

	_, err := s.im.CreateListing(ctx.Background(), &listing.CreateListingParams{})
	s.ErrorIs(err, domain.ErrPaused)
}

func (s *listingSuite) TestCreateListing721QuantityExceeded() {
	s.expectSettings(false)
	now := time.Now()

	params := &listing.CreateListingParams{
		Creator:       seller,
		AssetContract: erc721,
		TokenId:       domain.TokenId("1"),
		TokenType:     domain.TokenType721,
		Quantity:      2,
		Currency:      erc20,
		PricePerToken: "5",
		StartTime:     now.Unix(),
		EndTime:       now.Add(time.Hour).Unix(),
	}

	_, err := s.im.CreateListing(ctx.Background(), params)
	s.ErrorIs(err, domain.ErrQuantityExceeded)
}

func (s *listingSuite) TestBuyPartialFill() {
	s.expectSettings(false)
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(4)).
		Return(true, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, buyer, erc20, amountEq("8")).Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc1155, domain.TokenId("42"), erc20, amountEq("8")).
		Return([]marketplace.Split{}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.Quantity != nil && *p.Quantity == 6 && p.Status == nil
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, buyer, seller, amountEq("8")).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc1155, domain.TokenId("42"), domain.TokenType1155, seller, buyer, int64(4)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           4,
		Currency:           erc20,
		ExpectedTotalPrice: "8",
	})
	s.NoError(err)
}

func (s *listingSuite) TestBuyFullFillCompletes() {
	s.expectSettings(false)
	l := s.mockListing()
	l.Quantity = 4

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(4)).
		Return(true, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, buyer, erc20, amountEq("8")).Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc1155, domain.TokenId("42"), erc20, amountEq("8")).
		Return([]marketplace.Split{{Recipient: feeWallet, Amount: decimal.NewFromInt(1)}}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.Quantity != nil && *p.Quantity == 0 && p.Status != nil && *p.Status == listing.StatusCompleted
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, buyer, feeWallet, amountEq("1")).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, buyer, seller, amountEq("7")).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc1155, domain.TokenId("42"), domain.TokenType1155, seller, buyer, int64(4)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           4,
		Currency:           erc20,
		ExpectedTotalPrice: "8",
	})
	s.NoError(err)
}

func (s *listingSuite) TestBuyQuantityExceeded() {
	s.expectSettings(false)
	l := s.mockListing()
	l.Quantity = 6

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           7,
		Currency:           erc20,
		ExpectedTotalPrice: "14",
	})
	s.ErrorIs(err, domain.ErrQuantityExceeded)
}

func (s *listingSuite) TestBuyPriceMismatch() {
	s.expectSettings(false)
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           4,
		Currency:           erc20,
		ExpectedTotalPrice: "9",
	})
	s.ErrorIs(err, domain.ErrPriceMismatch)
}

func (s *listingSuite) TestBuyWithCurrencyOverride() {
	s.expectSettings(false)
	l := s.mockListing()
	l.CurrencyOverrides = map[string]string{altErc20.ToLowerStr(): "5"}

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(2)).
		Return(true, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, buyer, altErc20, amountEq("10")).Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc1155, domain.TokenId("42"), altErc20, amountEq("10")).
		Return([]marketplace.Split{}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.Anything).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, altErc20, buyer, seller, amountEq("10")).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc1155, domain.TokenId("42"), domain.TokenType1155, seller, buyer, int64(2)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           2,
		Currency:           altErc20,
		ExpectedTotalPrice: "10",
	})
	s.NoError(err)
}

func (s *listingSuite) TestBuyWithUnapprovedCurrency() {
	s.expectSettings(false)
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           1,
		Currency:           altErc20,
		ExpectedTotalPrice: "5",
	})
	s.ErrorIs(err, domain.ErrCurrencyNotApproved)
}

func (s *listingSuite) TestBuyReservedRequiresApproval() {
	s.expectSettings(false)
	l := s.mockListing()
	l.Reserved = true

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           1,
		Currency:           erc20,
		ExpectedTotalPrice: "2",
	})
	s.ErrorIs(err, domain.ErrBuyerNotApproved)
}

func (s *listingSuite) TestBuyReservedApprovedBuyer() {
	s.expectSettings(false)
	l := s.mockListing()
	l.Reserved = true
	l.ApprovedBuyers = map[string]bool{buyer.ToLowerStr(): true}

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(1)).
		Return(true, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, buyer, erc20, amountEq("2")).Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc1155, domain.TokenId("42"), erc20, amountEq("2")).
		Return([]marketplace.Split{}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.Anything).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, buyer, seller, amountEq("2")).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc1155, domain.TokenId("42"), domain.TokenType1155, seller, buyer, int64(1)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           1,
		Currency:           erc20,
		ExpectedTotalPrice: "2",
	})
	s.NoError(err)
}

func (s *listingSuite) TestBuyOutsideWindow() {
	s.expectSettings(false)
	l := s.mockListing()
	l.EndTime = time.Now().Add(-time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           1,
		Currency:           erc20,
		ExpectedTotalPrice: "2",
	})
	s.ErrorIs(err, domain.ErrOutsideWindow)
}

func (s *listingSuite) TestCancelListingNotCreator() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.CancelListing(ctx.Background(), stranger, 7)
	s.ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *listingSuite) TestCancelListing() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.Status != nil && *p.Status == listing.StatusCancelled
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CancelListing(ctx.Background(), seller, 7)
	s.NoError(err)
}

func (s *listingSuite) TestCancelCompletedListing() {
	l := s.mockListing()
	l.Status = listing.StatusCompleted

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.CancelListing(ctx.Background(), seller, 7)
	s.ErrorIs(err, domain.ErrInvalidStatus)
}

func (s *listingSuite) TestGetAllValidListingsFiltersStaleOwnership() {
	live := s.mockListing()
	expired := s.mockListing()
	expired.ListingId = 8
	expired.EndTime = time.Now().Add(-time.Minute)
	sold := s.mockListing()
	sold.ListingId = 9
	sold.TokenId = domain.TokenId("43")

	s.repo.On("FindAll", mock.Anything,
		mock.AnythingOfType("listing.FindAllOptionsFunc"),
		mock.AnythingOfType("listing.FindAllOptionsFunc"),
		mock.AnythingOfType("listing.FindAllOptionsFunc")).
		Return([]*listing.Listing{live, expired, sold}, nil).Once()

	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(10)).
		Return(true, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("43"), domain.TokenType1155, int64(10)).
		Return(false, nil).Once()

	res, err := s.im.GetAllValidListings(ctx.Background(), 0, 100)
	s.NoError(err)
	s.Len(res, 1)
	s.Equal(int64(7), res[0].ListingId)
}

func (s *listingSuite) TestUpdateListing() {
	s.expectSettings(false)
	l := s.mockListing()
	now := time.Now()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(5)).
		Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.Quantity != nil && *p.Quantity == 5 &&
			p.PricePerToken != nil && *p.PricePerToken == "3" &&
			p.Currency != nil && *p.Currency == altErc20 &&
			p.Reserved != nil && *p.Reserved
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.UpdateListing(ctx.Background(), 7, &listing.UpdateListingParams{
		Actor:         seller,
		AssetContract: erc1155,
		TokenId:       domain.TokenId("42"),
		TokenType:     domain.TokenType1155,
		Quantity:      5,
		Currency:      altErc20,
		PricePerToken: "3",
		StartTime:     now.Unix(),
		EndTime:       now.Add(24 * time.Hour).Unix(),
		Reserved:      true,
	})
	s.NoError(err)
}

func (s *listingSuite) TestUpdateListingRejectsAssetChange() {
	s.expectSettings(false)
	l := s.mockListing()
	now := time.Now()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.UpdateListing(ctx.Background(), 7, &listing.UpdateListingParams{
		Actor:         seller,
		AssetContract: erc721,
		TokenId:       domain.TokenId("42"),
		TokenType:     domain.TokenType721,
		Quantity:      1,
		Currency:      erc20,
		PricePerToken: "2",
		StartTime:     now.Unix(),
		EndTime:       now.Add(24 * time.Hour).Unix(),
	})
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingSuite) TestUpdateListingNotCreator() {
	s.expectSettings(false)
	l := s.mockListing()
	now := time.Now()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.UpdateListing(ctx.Background(), 7, &listing.UpdateListingParams{
		Actor:         stranger,
		AssetContract: erc1155,
		TokenId:       domain.TokenId("42"),
		TokenType:     domain.TokenType1155,
		Quantity:      5,
		Currency:      erc20,
		PricePerToken: "2",
		StartTime:     now.Unix(),
		EndTime:       now.Add(24 * time.Hour).Unix(),
	})
	s.ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *listingSuite) TestApproveBuyerAddsEntry() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.ApprovedBuyers != nil && (*p.ApprovedBuyers)[buyer.ToLowerStr()]
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.ApproveBuyer(ctx.Background(), seller, 7, buyer, true)
	s.NoError(err)
}

func (s *listingSuite) TestApproveBuyerUnapproveDeletesEntry() {
	l := s.mockListing()
	l.ApprovedBuyers = map[string]bool{buyer.ToLowerStr(): true}

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		if p.ApprovedBuyers == nil {
			return false
		}
		_, ok := (*p.ApprovedBuyers)[buyer.ToLowerStr()]
		return !ok
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.ApproveBuyer(ctx.Background(), seller, 7, buyer, false)
	s.NoError(err)
}

func (s *listingSuite) TestApproveBuyerNotCreator() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.ApproveBuyer(ctx.Background(), stranger, 7, buyer, true)
	s.ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *listingSuite) TestApproveCurrencySetsOverride() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.CurrencyOverrides != nil && (*p.CurrencyOverrides)[altErc20.ToLowerStr()] == "5"
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.ApproveCurrency(ctx.Background(), seller, 7, altErc20, "5")
	s.NoError(err)
}

func (s *listingSuite) TestApproveCurrencyZeroPriceDeletesOverride() {
	l := s.mockListing()
	l.CurrencyOverrides = map[string]string{altErc20.ToLowerStr(): "5"}

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		if p.CurrencyOverrides == nil {
			return false
		}
		_, ok := (*p.CurrencyOverrides)[altErc20.ToLowerStr()]
		return !ok
	})).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.ApproveCurrency(ctx.Background(), seller, 7, altErc20, "0")
	s.NoError(err)
}

func (s *listingSuite) TestApproveCurrencyBaseCurrencyAtListingPrice() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.ApproveCurrency(ctx.Background(), seller, 7, erc20, "2")
	s.NoError(err)
}

func (s *listingSuite) TestApproveCurrencyBaseCurrencyWrongPrice() {
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()

	err := s.im.ApproveCurrency(ctx.Background(), seller, 7, erc20, "3")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *listingSuite) TestBuyTransferFailureRestoresListing() {
	s.expectSettings(false)
	l := s.mockListing()

	s.repo.On("FindOne", mock.Anything, int64(7)).Return(l, nil).Once()
	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, seller, erc1155, domain.TokenId("42"), domain.TokenType1155, int64(4)).
		Return(true, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, buyer, erc20, amountEq("8")).Return(true, nil).Once()
	s.fees.On("Splits", mock.Anything, erc1155, domain.TokenId("42"), erc20, amountEq("8")).
		Return([]marketplace.Split{}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.Quantity != nil && *p.Quantity == 6
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, buyer, seller, amountEq("8")).
		Return(errors.New("rpc unavailable")).Once()
	s.repo.On("Patch", mock.Anything, int64(7), mock.MatchedBy(func(p *listing.Patchable) bool {
		return p.Quantity != nil && *p.Quantity == 10 &&
			p.Status != nil && *p.Status == listing.StatusCreated
	})).Return(nil).Once()

	err := s.im.Buy(ctx.Background(), &listing.BuyParams{
		Buyer:              buyer,
		ListingId:          7,
		BuyFor:             buyer,
		Quantity:           4,
		Currency:           erc20,
		ExpectedTotalPrice: "8",
	})
	s.Error(err)
}
