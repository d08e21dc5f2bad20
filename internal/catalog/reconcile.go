package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yourorg/photoapp/internal/db"
	"github.com/yourorg/photoapp/internal/metrics"
)

// ReconcileResult counts how pending upload intents were settled.
type ReconcileResult struct {
	Committed int // asset row exists; intent dropped
	Removed   int // no asset row; object deleted (or already absent)
	Failed    int // left pending for the next sweep
}

// Reconcile settles upload intents left behind by an interrupted or failed upload.
func (c *Catalog) Reconcile(ctx context.Context) (ReconcileResult, error) {
	var res ReconcileResult
	pending, err := c.Journal.Pending()
	if err != nil {
		return res, fail(KindInternal, "reconcile", "", err)
	}
	for _, in := range pending {
		log := c.Logger.With(zap.String("intent", in.ID), zap.String("key", in.BucketKey))
		_, err := c.Assets.GetByKey(ctx, in.BucketKey)
		switch {
		case err == nil:
			c.resolve(in)
			res.Committed++
			metrics.Reconciled.WithLabelValues("committed").Inc()
			log.Info("upload intent already committed")
			continue
		case !errors.Is(err, db.ErrNotFound):
			res.Failed++
			metrics.Reconciled.WithLabelValues("failed").Inc()
			log.Warn("reconcile lookup failed", zap.Error(err))
			continue
		}

		exists, err := c.Store.Exists(ctx, in.BucketKey)
		if err == nil && exists {
			err = c.Store.Delete(ctx, in.BucketKey)
		}
		if err != nil {
			res.Failed++
			metrics.Reconciled.WithLabelValues("failed").Inc()
			log.Warn("reconcile delete failed", zap.Error(err))
			continue
		}
		c.resolve(in)
		res.Removed++
		metrics.Reconciled.WithLabelValues("removed").Inc()
		log.Info("orphaned upload removed", zap.Bool("object_existed", exists))
	}
	return res, nil
}
