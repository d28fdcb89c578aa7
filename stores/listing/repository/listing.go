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
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider"
	"github.com/x-xyz/marketplace/service/cache/provider/compound"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/marketplace/service/cache/provider/redis"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
)

type listingRepoImpl struct {
	q            query.Mongo
	listingCache cache.Service
}

func NewListingRepo(q query.Mongo, redis redis.Service) listing.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("listing", 512),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &listingRepoImpl{
		q: q,
		listingCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxListing,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
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
		query["listingId"] = idQuery
	}

	if options.Creator != nil {
		query["creator"] = *options.Creator
	}

	if options.Status != nil {
		query["status"] = *options.Status
	}

	return query, nil
}

func (im *listingRepoImpl) Create(c ctx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	if err := im.q.Insert(c, domain.TableListings, l); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"listing": *l,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) FindOne(c ctx.Ctx, listingId int64) (*listing.Listing, error) {
	key := keys.RedisKey(strconv.FormatInt(listingId, 10))

	res := &listing.Listing{}
	if err := im.listingCache.GetByFunc(c, key, res, func() (interface{}, error) {
		return im.findOne(c, listingId)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) findOne(c ctx.Ctx, listingId int64) (*listing.Listing, error) {
	res := &listing.Listing{}
	err := im.q.FindOne(c, domain.TableListings, bson.M{"listingId": listingId}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "listingId"
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		sort = "-listingId"
	}

	res := []*listing.Listing{}
	if err := im.q.Search(c, domain.TableListings, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) Count(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) Patch(c ctx.Ctx, listingId int64, patch *listing.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"patch": *patch,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(c, domain.TableListings, bson.M{"listingId": listingId}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
			"updater":   updater,
		}).Error("failed to q.Patch")
		return err
	}

	im.invalidateCache(c, listingId)

	return nil
}

func (im *listingRepoImpl) Remove(c ctx.Ctx, listingId int64) error {
	err := im.q.Remove(c, domain.TableListings, bson.M{"listingId": listingId})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
		}).Error("failed to q.Remove")
		return err
	}

	im.invalidateCache(c, listingId)

	return nil
}

func (im *listingRepoImpl) invalidateCache(c ctx.Ctx, listingId int64) {
	key := keys.RedisKey(strconv.FormatInt(listingId, 10))
	if err := im.listingCache.Del(c, key); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": listingId,
		}).Error("listingCache.Del failed")
	}
}
