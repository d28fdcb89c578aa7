package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	address := "0xCe4468E7cE84AcEB74363F4Ea64E5A038176F369"
	tkn, err := u.SignToken(ctx, domain.Address(address))
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, domain.Address(address).ToLowerStr(), ads)
}

func TestSignTokenRejectsBadAddress(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	_, err := u.SignToken(ctx, "not-an-address")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestParseTokenMalformedInput(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	_, err := u.ParseToken(ctx, "garbage")
	assert.Error(t, err)
}
