package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

type Table string

const (
	TableListings     Table = "listings"
	TableAuctions     Table = "auctions"
	TableOffers       Table = "offers"
	TableIdCounters   Table = "id_counters"
	TableActivities   Table = "activities"
	TableSettings     Table = "settings"
	TableHealthChecks Table = "health_checks"
)

type TokenType int

const (
	TokenType721  TokenType = 721
	TokenType1155 TokenType = 1155
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// NativeCurrency marks payments in the protocol-native balance rather than a
// token contract.
const NativeCurrency = Address("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ParseAmount parses a decimal string amount. Amounts are stored as strings to
// keep full precision through mongo round trips.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, xerrors.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)
