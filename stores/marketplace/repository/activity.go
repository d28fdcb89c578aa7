package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type activityRepoImpl struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) marketplace.ActivityRepo {
	return &activityRepoImpl{q}
}

func (im *activityRepoImpl) makeQuery(opts ...marketplace.FindActivityOptionsFunc) (bson.M, error) {
	options, err := marketplace.GetFindActivityOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.Actor != nil {
		query["actor"] = *options.Actor
	}

	if options.EntityKind != nil {
		query["entityKind"] = *options.EntityKind
	}

	if options.EntityId != nil {
		query["entityId"] = *options.EntityId
	}

	if len(options.Types) > 0 {
		query["type"] = bson.M{"$in": options.Types}
	}

	return query, nil
}

func (im *activityRepoImpl) Insert(c ctx.Ctx, activity *marketplace.Activity) error {
	if err := im.q.Insert(c, domain.TableActivities, activity); err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"activity": *activity,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *activityRepoImpl) FindAll(c ctx.Ctx, opts ...marketplace.FindActivityOptionsFunc) ([]marketplace.Activity, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := marketplace.GetFindActivityOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	if options.Offset != nil {
		offset = *options.Offset
	}
	if options.Limit != nil {
		limit = *options.Limit
	}

	res := []marketplace.Activity{}
	if err := im.q.Search(c, domain.TableActivities, offset, limit, "-time", query, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *activityRepoImpl) Count(c ctx.Ctx, opts ...marketplace.FindActivityOptionsFunc) (int, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableActivities, query)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}
