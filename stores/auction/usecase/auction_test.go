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
	"github.com/x-xyz/marketplace/domain/auction"
	mAuction "github.com/x-xyz/marketplace/domain/auction/mocks"
	"github.com/x-xyz/marketplace/domain/marketplace"
	mMarketplace "github.com/x-xyz/marketplace/domain/marketplace/mocks"
	mkUsecase "github.com/x-xyz/marketplace/stores/marketplace/usecase"
)

var (
	creator   = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	bidder1   = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
	bidder2   = domain.Address("0x1a01ecd2263a9d5b5967667e508ea22db478bc4b")
	erc20     = domain.Address("0x07fe9ffd85b54a3a18467d3b5e91a55ecc52a268")
	erc721    = domain.Address("0xdcf0de6b17785a143d006e1515a6afd123cde8ba")
	escrow    = domain.Address("0x2e9e733cb0394aace1226e34313f12b0764be65a")
	feeWallet = domain.Address("0x54a769173d97432a48371b022709117c090298e3")
)

type auctionSuite struct {
	suite.Suite

	repo       *mAuction.Repo
	idCounter  *mMarketplace.IdCounterRepo
	activities *mMarketplace.ActivityRepo
	settings   *mMarketplace.SettingsRepo
	custody    *mMarketplace.TokenCustody
	funds      *mMarketplace.FundTransferer
	fees       *mMarketplace.FeeCalculator

	im auction.Usecase
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.repo = &mAuction.Repo{}
	s.idCounter = &mMarketplace.IdCounterRepo{}
	s.activities = &mMarketplace.ActivityRepo{}
	s.settings = &mMarketplace.SettingsRepo{}
	s.custody = &mMarketplace.TokenCustody{}
	s.funds = &mMarketplace.FundTransferer{}
	s.fees = &mMarketplace.FeeCalculator{}

	s.im = NewAuctionUsecase(&AuctionUsecaseCfg{
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

func (s *auctionSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.idCounter.AssertExpectations(s.T())
	s.custody.AssertExpectations(s.T())
	s.funds.AssertExpectations(s.T())
	s.fees.AssertExpectations(s.T())
}

func (s *auctionSuite) expectSettings(paused bool) {
	s.settings.On("Get", mock.Anything).Return(&marketplace.Settings{Paused: paused}, nil)
}

func (s *auctionSuite) mockAuction() *auction.Auction {
	now := time.Now()
	return &auction.Auction{
		AuctionId: 3,
		Creator:   creator,
		Terms: auction.Terms{
			AssetContract:       erc721,
			TokenId:             domain.TokenId("9"),
			TokenType:           domain.TokenType721,
			Quantity:            1,
			Currency:            erc20,
			MinimumBidAmount:    "100",
			BuyoutBidAmount:     "1000",
			TimeBufferInSeconds: 900,
			BidBufferBps:        500,
			StartTime:           now.Add(-time.Hour),
		},
		State: auction.State{
			EndTime: now.Add(time.Hour),
			Status:  auction.StatusCreated,
		},
		CreatedAt: now.Add(-time.Hour),
	}
}

func amountEq(v string) interface{} {
	want, _ := decimal.NewFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func (s *auctionSuite) TestCreateAuctionEscrowsTokens() {
	s.expectSettings(false)
	now := time.Now()

	params := &auction.CreateAuctionParams{
		Creator:          creator,
		AssetContract:    erc721,
		TokenId:          domain.TokenId("9"),
		TokenType:        domain.TokenType721,
		Quantity:         1,
		Currency:         erc20,
		MinimumBidAmount: "100",
		BuyoutBidAmount:  "1000",
		StartTime:        now.Unix(),
		EndTime:          now.Add(24 * time.Hour).Unix(),
	}

	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, creator, erc721, domain.TokenId("9"), domain.TokenType721, int64(1)).
		Return(true, nil).Once()
	s.idCounter.On("Next", mock.Anything, domain.TableAuctions).Return(int64(0), nil).Once()
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.AuctionId == 0 &&
			a.State.Status == auction.StatusCreated &&
			a.TimeBufferInSeconds == defaultTimeBufferInSeconds &&
			a.BidBufferBps == defaultBidBufferBps
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, creator, escrow, int64(1)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	auctionId, err := s.im.CreateAuction(ctx.Background(), params)
	s.NoError(err)
	s.Equal(int64(0), auctionId)
}

func (s *auctionSuite) TestCreateAuctionEscrowFailureRollsBack() {
	s.expectSettings(false)
	now := time.Now()

	params := &auction.CreateAuctionParams{
		Creator:          creator,
		AssetContract:    erc721,
		TokenId:          domain.TokenId("9"),
		TokenType:        domain.TokenType721,
		Quantity:         1,
		Currency:         erc20,
		MinimumBidAmount: "100",
		StartTime:        now.Unix(),
		EndTime:          now.Add(time.Hour).Unix(),
	}

	s.custody.On("VerifyOwnershipAndApproval", mock.Anything, creator, erc721, domain.TokenId("9"), domain.TokenType721, int64(1)).
		Return(true, nil).Once()
	s.idCounter.On("Next", mock.Anything, domain.TableAuctions).Return(int64(4), nil).Once()
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, creator, escrow, int64(1)).
		Return(domain.ErrAssetNotOwned).Once()
	s.repo.On("Remove", mock.Anything, int64(4)).Return(nil).Once()

	_, err := s.im.CreateAuction(ctx.Background(), params)
	s.ErrorIs(err, domain.ErrAssetNotOwned)
}

func (s *auctionSuite) TestFirstBidOnlyNeedsMinimum() {
	s.expectSettings(false)
	a := s.mockAuction()

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder1, erc20, amountEq("100")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.WinningBid != nil && p.WinningBid.BidAmount == "100" && p.WinningBid.Bidder == bidder1
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder1, escrow, amountEq("100")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder1, AuctionId: 3, BidAmount: "100"})
	s.NoError(err)
}

func (s *auctionSuite) TestBidBelowStepUpRejected() {
	s.expectSettings(false)
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100", BidTime: time.Now().Add(-time.Minute)}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	// 500 bps over 100 requires at least 105
	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder2, AuctionId: 3, BidAmount: "104"})
	s.ErrorIs(err, domain.ErrBidTooLow)
}

func (s *auctionSuite) TestBidAtStepUpRefundsPreviousBidder() {
	s.expectSettings(false)
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100", BidTime: time.Now().Add(-time.Minute)}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder2, erc20, amountEq("105")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.WinningBid != nil && p.WinningBid.Bidder == bidder2 && p.WinningBid.BidAmount == "105"
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder2, escrow, amountEq("105")).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, bidder1, amountEq("100")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder2, AuctionId: 3, BidAmount: "105"})
	s.NoError(err)
}

func (s *auctionSuite) TestBidExtendsClosingWindow() {
	s.expectSettings(false)
	a := s.mockAuction()
	// closes in five minutes, inside the 900s anti-sniping buffer
	a.State.EndTime = time.Now().Add(5 * time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder1, erc20, amountEq("100")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.EndTime != nil && p.EndTime.After(a.State.EndTime)
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder1, escrow, amountEq("100")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder1, AuctionId: 3, BidAmount: "100"})
	s.NoError(err)
}

func (s *auctionSuite) TestBuyoutClosesAuction() {
	s.expectSettings(false)
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100", BidTime: time.Now().Add(-time.Minute)}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder2, erc20, amountEq("1000")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		// bid above buyout is clamped to the buyout amount, the window closes
		// and the auction finalizes in the same patch
		return p.WinningBid != nil && p.WinningBid.BidAmount == "1000" &&
			p.EndTime != nil && !p.EndTime.After(time.Now()) &&
			p.Status != nil && *p.Status == auction.StatusCompleted
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder2, escrow, amountEq("1000")).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, bidder1, amountEq("100")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder2, AuctionId: 3, BidAmount: "1500"})
	s.NoError(err)
}

func (s *auctionSuite) TestBidAfterCloseRejected() {
	s.expectSettings(false)
	a := s.mockAuction()
	a.State.EndTime = time.Now().Add(-time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder1, AuctionId: 3, BidAmount: "100"})
	s.ErrorIs(err, domain.ErrOutsideWindow)
}

func (s *auctionSuite) TestCancelAuctionWithBidsRejected() {
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100", BidTime: time.Now()}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	err := s.im.CancelAuction(ctx.Background(), creator, 3)
	s.ErrorIs(err, domain.ErrAuctionHasBids)
}

func (s *auctionSuite) TestCancelAuctionReturnsTokens() {
	a := s.mockAuction()

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.Status != nil && *p.Status == auction.StatusCancelled
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, escrow, creator, int64(1)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CancelAuction(ctx.Background(), creator, 3)
	s.NoError(err)
}

func (s *auctionSuite) expiredAuctionWithWinner() *auction.Auction {
	a := s.mockAuction()
	a.State.EndTime = time.Now().Add(-time.Minute)
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "105", BidTime: time.Now().Add(-time.Hour)}
	return a
}

func (s *auctionSuite) TestCollectTokensPaysWinner() {
	a := s.expiredAuctionWithWinner()

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.PaidOutTokens != nil && *p.PaidOutTokens &&
			p.Status != nil && *p.Status == auction.StatusCompleted
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, escrow, bidder1, int64(1)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CollectTokens(ctx.Background(), bidder1, 3)
	s.NoError(err)
}

func (s *auctionSuite) TestCollectTokensTwiceRejected() {
	a := s.expiredAuctionWithWinner()
	a.State.PaidOutTokens = true

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	err := s.im.CollectTokens(ctx.Background(), bidder1, 3)
	s.ErrorIs(err, domain.ErrAlreadyPaidOut)
}

func (s *auctionSuite) TestCollectTokensBeforeCloseRejected() {
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "105", BidTime: time.Now()}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	err := s.im.CollectTokens(ctx.Background(), bidder1, 3)
	s.ErrorIs(err, domain.ErrAuctionLive)
}

func (s *auctionSuite) TestCollectTokensWithoutBidsReturnsToCreator() {
	a := s.mockAuction()
	a.State.EndTime = time.Now().Add(-time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.PaidOutTokens != nil && *p.PaidOutTokens &&
			p.Status != nil && *p.Status == auction.StatusCompleted
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, escrow, creator, int64(1)).
		Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CollectTokens(ctx.Background(), creator, 3)
	s.NoError(err)
}

func (s *auctionSuite) TestCollectPayoutSplitsFees() {
	s.expectSettings(false)
	a := s.expiredAuctionWithWinner()

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.fees.On("Splits", mock.Anything, erc721, domain.TokenId("9"), erc20, amountEq("105")).
		Return([]marketplace.Split{{Recipient: feeWallet, Amount: decimal.NewFromInt(5)}}, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.PaidOutBidAmount != nil && *p.PaidOutBidAmount &&
			p.Status != nil && *p.Status == auction.StatusCompleted
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, feeWallet, amountEq("5")).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, creator, amountEq("100")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.CollectPayout(ctx.Background(), creator, 3)
	s.NoError(err)
}

func (s *auctionSuite) TestCollectPayoutTwiceRejected() {
	a := s.expiredAuctionWithWinner()
	a.State.PaidOutBidAmount = true

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	err := s.im.CollectPayout(ctx.Background(), creator, 3)
	s.ErrorIs(err, domain.ErrAlreadyPaidOut)
}

func (s *auctionSuite) TestCollectPayoutWithoutBids() {
	a := s.mockAuction()
	a.State.EndTime = time.Now().Add(-time.Minute)

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	err := s.im.CollectPayout(ctx.Background(), creator, 3)
	s.ErrorIs(err, domain.ErrNoWinningBid)
}

func (s *auctionSuite) TestGetWinningBid() {
	a := s.expiredAuctionWithWinner()

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()

	bid, err := s.im.GetWinningBid(ctx.Background(), 3)
	s.NoError(err)
	s.Equal(bidder1, bid.Bidder)
	s.Equal("105", bid.BidAmount)
}

func (s *auctionSuite) TestGetAllValidAuctionsSkipsExpired() {
	live := s.mockAuction()
	expired := s.mockAuction()
	expired.AuctionId = 4
	expired.State.EndTime = time.Now().Add(-time.Minute)

	s.repo.On("FindAll", mock.Anything,
		mock.AnythingOfType("auction.FindAllOptionsFunc"),
		mock.AnythingOfType("auction.FindAllOptionsFunc"),
		mock.AnythingOfType("auction.FindAllOptionsFunc")).
		Return([]*auction.Auction{live, expired}, nil).Once()

	res, err := s.im.GetAllValidAuctions(ctx.Background(), 0, 100)
	s.NoError(err)
	s.Len(res, 1)
	s.Equal(int64(3), res[0].AuctionId)
}

func (s *auctionSuite) TestIsNewWinningBidStepUp() {
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100"}

	ok, err := a.IsNewWinningBid(decimal.NewFromInt(104))
	s.NoError(err)
	s.False(ok)

	ok, err = a.IsNewWinningBid(decimal.NewFromInt(105))
	s.NoError(err)
	s.True(ok)
}

func (s *auctionSuite) TestBidFarFromCloseKeepsEndTime() {
	s.expectSettings(false)
	a := s.mockAuction()
	// closes in an hour, well outside the 900s anti-sniping buffer

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder1, erc20, amountEq("100")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.WinningBid != nil && p.EndTime == nil
	})).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder1, escrow, amountEq("100")).Return(nil).Once()
	s.activities.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder1, AuctionId: 3, BidAmount: "100"})
	s.NoError(err)
}

func (s *auctionSuite) TestBidEscrowFailureRevertsAuction() {
	s.expectSettings(false)
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100", BidTime: time.Now().Add(-time.Minute)}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder2, erc20, amountEq("105")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.Anything).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder2, escrow, amountEq("105")).
		Return(errors.New("rpc unavailable")).Once()
	s.repo.On("Update", mock.Anything, int64(3), a).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder2, AuctionId: 3, BidAmount: "105"})
	s.Error(err)
}

func (s *auctionSuite) TestBidRefundFailureRevertsAndReturnsEscrow() {
	s.expectSettings(false)
	a := s.mockAuction()
	a.State.WinningBid = &auction.Bid{Bidder: bidder1, BidAmount: "100", BidTime: time.Now().Add(-time.Minute)}

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.funds.On("CheckBalanceAndAllowance", mock.Anything, bidder2, erc20, amountEq("105")).Return(true, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.Anything).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, bidder2, escrow, amountEq("105")).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, bidder1, amountEq("100")).
		Return(errors.New("rpc unavailable")).Once()
	s.repo.On("Update", mock.Anything, int64(3), a).Return(nil).Once()
	s.funds.On("Transfer", mock.Anything, erc20, escrow, bidder2, amountEq("105")).Return(nil).Once()

	err := s.im.Bid(ctx.Background(), &auction.BidParams{Bidder: bidder2, AuctionId: 3, BidAmount: "105"})
	s.Error(err)
}

func (s *auctionSuite) TestCollectTokensTransferFailureStaysCollectable() {
	a := s.expiredAuctionWithWinner()

	s.repo.On("FindOne", mock.Anything, int64(3)).Return(a, nil).Once()
	s.repo.On("Patch", mock.Anything, int64(3), mock.MatchedBy(func(p *auction.Patchable) bool {
		return p.PaidOutTokens != nil && *p.PaidOutTokens
	})).Return(nil).Once()
	s.custody.On("Transfer", mock.Anything, erc721, domain.TokenId("9"), domain.TokenType721, escrow, bidder1, int64(1)).
		Return(errors.New("rpc unavailable")).Once()
	s.repo.On("Update", mock.Anything, int64(3), a).Return(nil).Once()

	err := s.im.CollectTokens(ctx.Background(), bidder1, 3)
	s.Error(err)
}
