package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/marketplace"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type idCounter struct {
	Table string `bson:"table"`
	Next  int64  `bson:"next"`
}

type idCounterRepoImpl struct {
	q query.Mongo
}

func NewIdCounterRepo(q query.Mongo) marketplace.IdCounterRepo {
	return &idCounterRepoImpl{q}
}

func (im *idCounterRepoImpl) Next(c ctx.Ctx, table domain.Table) (int64, error) {
	res := idCounter{}
	err := im.q.Increment(c, domain.TableIdCounters, bson.M{"table": string(table)}, &res, "next", 1)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"table": table,
		}).Error("failed to q.Increment")
		return 0, err
	}

	// the counter holds the next unassigned id, so the id handed out is the
	// post-increment value minus one. the first call returns 0.
	return res.Next - 1, nil
}
