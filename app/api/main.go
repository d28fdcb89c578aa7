package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/database/redisclient"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	bValidator "github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain"
	mmiddleware "github.com/x-xyz/marketplace/middleware"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
	auction_delivery "github.com/x-xyz/marketplace/stores/auction/delivery/http"
	auction_repository "github.com/x-xyz/marketplace/stores/auction/repository"
	auction_usecase "github.com/x-xyz/marketplace/stores/auction/usecase"
	auth_delivery "github.com/x-xyz/marketplace/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/marketplace/stores/auth/usecase"
	exchange_usecase "github.com/x-xyz/marketplace/stores/exchange/usecase"
	hc_delivery "github.com/x-xyz/marketplace/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/marketplace/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/marketplace/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/marketplace/stores/listing/delivery/http"
	listing_repository "github.com/x-xyz/marketplace/stores/listing/repository"
	listing_usecase "github.com/x-xyz/marketplace/stores/listing/usecase"
	marketplace_delivery "github.com/x-xyz/marketplace/stores/marketplace/delivery/http"
	marketplace_repository "github.com/x-xyz/marketplace/stores/marketplace/repository"
	marketplace_usecase "github.com/x-xyz/marketplace/stores/marketplace/usecase"
	offer_delivery "github.com/x-xyz/marketplace/stores/offer/delivery/http"
	offer_repository "github.com/x-xyz/marketplace/stores/offer/repository"
	offer_usecase "github.com/x-xyz/marketplace/stores/offer/usecase"
)

func init() {
	configPath := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)

	mmiddleware.SetupCache(redisCache)

	// init chain service
	context.Info("init chain client")
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrl:      viper.GetString("chain.rpcUrl"),
		ChainId:     viper.GetInt64("chain.chainId"),
		OperatorKey: viper.GetString("chain.operatorKey"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	escrowAddress := domain.Address(viper.GetString("chain.escrowAddress")).ToLower()
	if escrowAddress.IsEmpty() && chainService != nil {
		escrowAddress = domain.Address(chainService.Operator().String()).ToLower()
	}
	wrappedNativeToken := domain.Address(viper.GetString("chain.wrappedNativeToken")).ToLower()
	royaltyRegistry := domain.Address(viper.GetString("chain.royaltyRegistry")).ToLower()

	custody := exchange_usecase.NewChainTokenCustody(&exchange_usecase.TokenCustodyCfg{
		Erc721:   contract.NewErc721(chainService),
		Erc1155:  contract.NewErc1155(chainService),
		Operator: escrowAddress,
	})
	funds := exchange_usecase.NewChainFundTransferer(&exchange_usecase.FundTransfererCfg{
		Erc20:              contract.NewErc20(chainService),
		Operator:           escrowAddress,
		WrappedNativeToken: wrappedNativeToken,
	})
	royalties := exchange_usecase.NewRoyaltyEngine(contract.NewRoyaltyEngine(chainService), royaltyRegistry)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	settingsRepo := marketplace_repository.NewSettingsRepo(q, redisCache)
	idCounterRepo := marketplace_repository.NewIdCounterRepo(q)
	activityRepo := marketplace_repository.NewActivityRepo(q)
	listingRepo := listing_repository.NewListingRepo(q, redisCache)
	auctionRepo := auction_repository.NewAuctionRepo(q, redisCache)
	offerRepo := offer_repository.NewOfferRepo(q, redisCache)

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	settings := marketplace_usecase.NewSettingsUsecase(settingsRepo)
	fees := marketplace_usecase.NewFeeCalculator(settings, royalties)
	listingUC := listing_usecase.NewListingUsecase(&listing_usecase.ListingUsecaseCfg{
		Repo:       listingRepo,
		IdCounter:  idCounterRepo,
		Activities: activityRepo,
		Settings:   settings,
		Custody:    custody,
		Funds:      funds,
		Fees:       fees,
	})
	auctionUC := auction_usecase.NewAuctionUsecase(&auction_usecase.AuctionUsecaseCfg{
		Repo:          auctionRepo,
		IdCounter:     idCounterRepo,
		Activities:    activityRepo,
		Settings:      settings,
		Custody:       custody,
		Funds:         funds,
		Fees:          fees,
		EscrowAddress: escrowAddress,
	})
	offerUC := offer_usecase.NewOfferUsecase(&offer_usecase.OfferUsecaseCfg{
		Repo:          offerRepo,
		IdCounter:     idCounterRepo,
		Activities:    activityRepo,
		Settings:      settings,
		Custody:       custody,
		Funds:         funds,
		Fees:          fees,
		EscrowAddress: escrowAddress,
	})

	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	listing_delivery.New(e, listingUC, authMiddleware)
	auction_delivery.New(e, auctionUC, authMiddleware)
	offer_delivery.New(e, offerUC, authMiddleware)
	marketplace_delivery.New(e, settings, activityRepo, authMiddleware)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
