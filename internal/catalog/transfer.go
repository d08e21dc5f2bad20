package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/photoapp/internal/db"
	"github.com/yourorg/photoapp/internal/iopkg"
	"github.com/yourorg/photoapp/internal/journal"
	"github.com/yourorg/photoapp/internal/metrics"
	"github.com/yourorg/photoapp/internal/models"
)

func parseID(op, what, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fail(KindInput, op, fmt.Sprintf("%s %q is not an integer", what, strings.TrimSpace(s)), err)
	}
	return id, nil
}

// Download fetches an asset and saves it under its original name,
// overwriting any local file with that name. With display set the
// saved file is also opened in the image viewer.
func (c *Catalog) Download(ctx context.Context, display bool) error {
	op := "download"
	if display {
		op = "display"
	}
	s, err := c.ask(ctx, op, "Enter asset id> ")
	if err != nil {
		return err
	}
	id, err := parseID(op, "asset id", s)
	if err != nil {
		return err
	}

	asset, err := c.Assets.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return fail(KindPrecondition, op, "No such asset...", nil)
	}
	if err != nil {
		return fail(KindStore, op, "", err)
	}

	tmp, err := c.Store.Download(ctx, asset.BucketKey, c.WorkDir)
	if err != nil {
		return fail(KindTransport, op, "", err)
	}
	dst := c.local(asset.AssetName)
	if err := iopkg.Replace(tmp, dst); err != nil {
		os.Remove(tmp)
		return fail(KindInternal, op, "", err)
	}
	if st, err := os.Stat(dst); err == nil {
		metrics.BytesDownloaded.Add(float64(st.Size()))
	}
	c.printf("Downloaded from S3 and saved as ' %s '\n", asset.AssetName)
	c.Logger.Debug("asset downloaded", zap.Int64("assetid", asset.ID), zap.String("key", asset.BucketKey))

	if display {
		if err := c.Viewer.Show(ctx, dst); err != nil {
			return fail(KindInternal, op, "", err)
		}
	}
	return nil
}

// Upload stores a local file for an existing user and records it as a new asset.
// The upload is journaled first; if the asset row cannot be written the object
// is deleted again, and if that fails the journal entry is left for Reconcile.
func (c *Catalog) Upload(ctx context.Context) error {
	const op = "upload"
	name, err := c.ask(ctx, op, "Enter local filename> ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	uid, err := c.ask(ctx, op, "Enter user id> ")
	if err != nil {
		return err
	}

	src := c.local(name)
	st, err := iopkg.LocalFile(src)
	if err != nil {
		return fail(KindPrecondition, op, fmt.Sprintf("Local file ' %s ' does not exist...", name), nil)
	}
	userID, err := parseID(op, "user id", uid)
	if err != nil {
		return err
	}
	user, err := c.Users.Get(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return fail(KindPrecondition, op, "No user found...", nil)
	}
	if err != nil {
		return fail(KindStore, op, "", err)
	}

	key := models.AssetKey(user.BucketFolder, uuid.NewString())
	intent, err := c.Journal.Stage(key, user.ID, name)
	if err != nil {
		return fail(KindInternal, op, "", fmt.Errorf("journal stage: %w", err))
	}

	if _, err := c.Store.Upload(ctx, src, key); err != nil {
		c.resolve(intent)
		return fail(KindTransport, op, "", err)
	}
	metrics.BytesUploaded.Add(float64(st.Size()))
	c.printf("Uploaded and stored in S3 as '%s'\n", key)

	next, err := c.Assets.NextID(ctx)
	if err != nil {
		c.compensate(ctx, intent)
		return fail(KindStore, op, "", err)
	}
	err = c.Assets.Insert(ctx, models.Asset{ID: next, UserID: user.ID, AssetName: name, BucketKey: key})
	if err != nil {
		c.compensate(ctx, intent)
		if errors.Is(err, db.ErrNoRowsAffected) {
			return fail(KindData, op, "Error inserting into database", err)
		}
		return fail(KindStore, op, "", err)
	}
	c.resolve(intent)
	c.printf("Recorded in RDS under asset id %d\n", next)
	c.Logger.Info("asset uploaded", zap.Int64("assetid", next), zap.Int64("userid", user.ID), zap.String("key", key))
	return nil
}

// AddUser creates a user with a fresh bucket folder. Inputs are stored as typed.
func (c *Catalog) AddUser(ctx context.Context) error {
	const op = "adduser"
	email, err := c.ask(ctx, op, "Enter user's email> ")
	if err != nil {
		return err
	}
	last, err := c.ask(ctx, op, "Enter user's last (family) name> ")
	if err != nil {
		return err
	}
	first, err := c.ask(ctx, op, "Enter user's first (given) name> ")
	if err != nil {
		return err
	}

	next, err := c.Users.NextID(ctx)
	if err != nil {
		return fail(KindStore, op, "", err)
	}
	u := models.User{ID: next, Email: email, LastName: last, FirstName: first, BucketFolder: uuid.NewString()}
	if err := c.Users.Insert(ctx, u); err != nil {
		if errors.Is(err, db.ErrNoRowsAffected) {
			return fail(KindData, op, "Error inserting into database", err)
		}
		return fail(KindStore, op, "", err)
	}
	c.printf("Recorded in RDS under user id %d\n", next)
	c.Logger.Info("user added", zap.Int64("userid", next), zap.String("folder", u.BucketFolder))
	return nil
}

func (c *Catalog) resolve(in journal.Intent) {
	if err := c.Journal.Resolve(in.ID); err != nil {
		c.Logger.Warn("journal resolve failed", zap.String("intent", in.ID), zap.Error(err))
	}
}

// compensate removes an object whose asset row was never written.
func (c *Catalog) compensate(ctx context.Context, in journal.Intent) {
	if err := c.Store.Delete(ctx, in.BucketKey); err != nil {
		c.Logger.Error("orphaned object left for reconciliation",
			zap.String("intent", in.ID), zap.String("key", in.BucketKey), zap.Error(err))
		return
	}
	c.resolve(in)
}
