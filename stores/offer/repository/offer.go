package repository

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/domain/offer"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider"
	"github.com/x-xyz/marketplace/service/cache/provider/compound"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/marketplace/service/cache/provider/redis"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
)

type offerRepoImpl struct {
	q          query.Mongo
	offerCache cache.Service
}

func NewOfferRepo(q query.Mongo, redis redis.Service) offer.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("offer", 512),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &offerRepoImpl{
		q: q,
		offerCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxOffer,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *offerRepoImpl) makeQuery(opts ...offer.FindAllOptionsFunc) (bson.M, error) {
	options, err := offer.GetFindAllOptions(opts...)
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
		query["offerId"] = idQuery
	}

	if options.Offeror != nil {
		query["offeror"] = *options.Offeror
	}

	if options.Status != nil {
		query["status"] = *options.Status
	}

	return query, nil
}

func (im *offerRepoImpl) Create(c ctx.Ctx, o *offer.Offer) error {
	o.LowerCase()
	if err := im.q.Insert(c, domain.TableOffers, o); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"offer": *o,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *offerRepoImpl) FindOne(c ctx.Ctx, offerId int64) (*offer.Offer, error) {
	key := keys.RedisKey(strconv.FormatInt(offerId, 10))

	res := &offer.Offer{}
	if err := im.offerCache.GetByFunc(c, key, res, func() (interface{}, error) {
		return im.findOne(c, offerId)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *offerRepoImpl) findOne(c ctx.Ctx, offerId int64) (*offer.Offer, error) {
	res := &offer.Offer{}
	err := im.q.FindOne(c, domain.TableOffers, bson.M{"offerId": offerId}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *offerRepoImpl) FindAll(c ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "offerId"
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		sort = "-offerId"
	}

	res := []*offer.Offer{}
	if err := im.q.Search(c, domain.TableOffers, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *offerRepoImpl) Count(c ctx.Ctx, opts ...offer.FindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableOffers, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *offerRepoImpl) Patch(c ctx.Ctx, offerId int64, patch *offer.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"patch": *patch,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(c, domain.TableOffers, bson.M{"offerId": offerId}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}

	im.invalidateCache(c, offerId)

	return nil
}

func (im *offerRepoImpl) Remove(c ctx.Ctx, offerId int64) error {
	err := im.q.Remove(c, domain.TableOffers, bson.M{"offerId": offerId})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to q.Remove")
		return err
	}

	im.invalidateCache(c, offerId)

	return nil
}

func (im *offerRepoImpl) invalidateCache(c ctx.Ctx, offerId int64) {
	key := keys.RedisKey(strconv.FormatInt(offerId, 10))
	if err := im.offerCache.Del(c, key); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("offerCache.Del failed")
	}
}
