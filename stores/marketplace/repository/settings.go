package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/domain/marketplace"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider"
	"github.com/x-xyz/marketplace/service/cache/provider/compound"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/marketplace/service/cache/provider/redis"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
)

// the settings table holds a single document
const settingsKey = "global"

type settingsRepoImpl struct {
	q             query.Mongo
	settingsCache cache.Service
}

func NewSettingsRepo(q query.Mongo, redis redis.Service) marketplace.SettingsRepo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("settings", 16),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &settingsRepoImpl{
		q: q,
		settingsCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxSettings,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *settingsRepoImpl) Get(c ctx.Ctx) (*marketplace.Settings, error) {
	res := &marketplace.Settings{}

	if err := im.settingsCache.GetByFunc(c, settingsKey, res, func() (interface{}, error) {
		return im.get(c)
	}); err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("settingsCache.GetByFunc failed")
		return nil, err
	}

	return res, nil
}

func (im *settingsRepoImpl) get(c ctx.Ctx) (*marketplace.Settings, error) {
	res := &marketplace.Settings{}
	err := im.q.FindOne(c, domain.TableSettings, bson.M{"key": settingsKey}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *settingsRepoImpl) Upsert(c ctx.Ctx, settings *marketplace.Settings) error {
	doc := bson.M{
		"key":                  settingsKey,
		"platformFeeRecipient": settings.PlatformFeeRecipient.ToLower(),
		"platformFeeBps":       settings.PlatformFeeBps,
		"paused":               settings.Paused,
		"updatedAt":            settings.UpdatedAt,
	}

	if err := im.q.Upsert(c, domain.TableSettings, bson.M{"key": settingsKey}, doc); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"settings": *settings,
		}).Error("failed to q.Upsert")
		return err
	}

	if err := im.settingsCache.Del(c, settingsKey); err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("settingsCache.Del failed")
	}

	return nil
}
