package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// authorization
	ErrNotAuthorized  = errors.New("caller is not authorized for this operation")
	ErrInvalidAddress = errors.New("Invalid address")

	// state
	ErrInvalidStatus  = errors.New("entity is not in an actionable status")
	ErrOutsideWindow  = errors.New("operation is outside the entity time window")
	ErrPaused         = errors.New("marketplace is paused")
	ErrAlreadyPaidOut = errors.New("settlement already collected")

	// listing
	ErrQuantityExceeded    = errors.New("requested quantity exceeds remaining quantity")
	ErrBuyerNotApproved    = errors.New("buyer is not approved for reserved listing")
	ErrCurrencyNotApproved = errors.New("currency is not approved for listing")
	ErrPriceMismatch       = errors.New("expected price does not match listing price")

	// auction
	ErrBidTooLow      = errors.New("bid does not qualify as the new winning bid")
	ErrAuctionHasBids = errors.New("auction with bids cannot be cancelled")
	ErrAuctionLive    = errors.New("auction is still accepting bids")
	ErrNoWinningBid   = errors.New("auction closed without a winning bid")

	// offer
	ErrOfferExpired = errors.New("offer is expired")

	// collaborator preconditions
	ErrInsufficientFunds = errors.New("insufficient currency balance or allowance")
	ErrAssetNotOwned     = errors.New("asset is not owned or approved by the seller")

	ErrInvalidCurrency = errors.New("invalid currency")
)
