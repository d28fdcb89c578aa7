package repository

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/auction"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider"
	"github.com/x-xyz/marketplace/service/cache/provider/compound"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/marketplace/service/cache/provider/redis"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
)

type auctionRepoImpl struct {
	q            query.Mongo
	auctionCache cache.Service
}

func NewAuctionRepo(q query.Mongo, redis redis.Service) auction.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("auction", 512),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &auctionRepoImpl{
		q: q,
		auctionCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxAuction,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *auctionRepoImpl) makeQuery(opts ...auction.FindAllOptionsFunc) (bson.M, error) {
	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	idQuery := bson.M{}
	if options.IdGTE != nil {
		idQuery["$gte"] = *options.IdGTE
	}
	if options.IdLTE != nil {
		idQuery["$lte"] = *options.IdLTE
	}
	if len(idQuery) > 0 {
		query["auctionId"] = idQuery
	}

	if options.Creator != nil {
		query["creator"] = *options.Creator
	}

	if options.Status != nil {
		query["state.status"] = *options.Status
	}

	return query, nil
}

func (im *auctionRepoImpl) Create(c ctx.Ctx, a *auction.Auction) error {
	a.LowerCase()
	if err := im.q.Insert(c, domain.TableAuctions, a); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"auction": *a,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *auctionRepoImpl) FindOne(c ctx.Ctx, auctionId int64) (*auction.Auction, error) {
	key := keys.RedisKey(strconv.FormatInt(auctionId, 10))

	res := &auction.Auction{}
	if err := im.auctionCache.GetByFunc(c, key, res, func() (interface{}, error) {
		return im.findOne(c, auctionId)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *auctionRepoImpl) findOne(c ctx.Ctx, auctionId int64) (*auction.Auction, error) {
	res := &auction.Auction{}
	err := im.q.FindOne(c, domain.TableAuctions, bson.M{"auctionId": auctionId}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *auctionRepoImpl) FindAll(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := auction.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "auctionId"
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		sort = "-auctionId"
	}

	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *auctionRepoImpl) Count(c ctx.Ctx, opts ...auction.FindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableAuctions, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *auctionRepoImpl) Patch(c ctx.Ctx, auctionId int64, patch *auction.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"patch": *patch,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(c, domain.TableAuctions, bson.M{"auctionId": auctionId}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
			"updater":   updater,
		}).Error("failed to q.Patch")
		return err
	}

	im.invalidateCache(c, auctionId)

	return nil
}

func (im *auctionRepoImpl) Update(c ctx.Ctx, auctionId int64, a *auction.Auction) error {
	err := im.q.Upsert(c, domain.TableAuctions, bson.M{"auctionId": auctionId}, a)
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to q.Upsert")
		return err
	}

	im.invalidateCache(c, auctionId)

	return nil
}

func (im *auctionRepoImpl) Remove(c ctx.Ctx, auctionId int64) error {
	err := im.q.Remove(c, domain.TableAuctions, bson.M{"auctionId": auctionId})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("failed to q.Remove")
		return err
	}

	im.invalidateCache(c, auctionId)

	return nil
}

func (im *auctionRepoImpl) invalidateCache(c ctx.Ctx, auctionId int64) {
	key := keys.RedisKey(strconv.FormatInt(auctionId, 10))
	if err := im.auctionCache.Del(c, key); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"auctionId": auctionId,
		}).Error("auctionCache.Del failed")
	}
}
