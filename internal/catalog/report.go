package catalog

import (
	"context"

	"github.com/yourorg/photoapp/internal/models"
)

// Stats prints bucket and database totals. Nothing is printed unless every lookup succeeds.
func (c *Catalog) Stats(ctx context.Context) error {
	const op = "stats"
	st := models.Stats{BucketName: c.Store.Bucket(), Endpoint: c.Endpoint}
	var err error
	if st.Objects, err = c.Store.Count(ctx); err != nil {
		return fail(KindTransport, op, "", err)
	}
	if st.Users, err = c.Users.Count(ctx); err != nil {
		return fail(KindStore, op, "", err)
	}
	if st.Assets, err = c.Assets.Count(ctx); err != nil {
		return fail(KindStore, op, "", err)
	}
	c.printf("S3 bucket name: %s\n", st.BucketName)
	c.printf("S3 assets: %d\n", st.Objects)
	c.printf("RDS MySQL endpoint: %s\n", st.Endpoint)
	c.printf("# of users: %d\n", st.Users)
	c.printf("# of assets: %d\n", st.Assets)
	return nil
}

// ListUsers prints every user, newest first.
func (c *Catalog) ListUsers(ctx context.Context) error {
	users, err := c.Users.List(ctx)
	if err != nil {
		return fail(KindStore, "users", "", err)
	}
	if len(users) == 0 {
		c.printf("No data found\n")
		return nil
	}
	for _, u := range users {
		c.printf("User id: %d\n", u.ID)
		c.printf("  Email: %s\n", u.Email)
		c.printf("  Name: %s , %s\n", u.LastName, u.FirstName)
		c.printf("  Folder: %s\n", u.BucketFolder)
	}
	return nil
}

// ListAssets prints every asset, newest first.
func (c *Catalog) ListAssets(ctx context.Context) error {
	assets, err := c.Assets.List(ctx)
	if err != nil {
		return fail(KindStore, "assets", "", err)
	}
	if len(assets) == 0 {
		c.printf("No data found\n")
		return nil
	}
	for _, a := range assets {
		c.printf("Asset id: %d\n", a.ID)
		c.printf("  User id: %d\n", a.UserID)
		c.printf("  Original Name: %s\n", a.AssetName)
		c.printf("  Key Name: %s\n", a.BucketKey)
	}
	return nil
}
