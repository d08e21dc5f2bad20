package db

import (
	"context"
	"database/sql"

	"github.com/yourorg/photoapp/internal/models"
)

// UserRepository reads and creates rows of the users table.
type UserRepository interface {
	// List returns all users, newest (highest id) first.
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Count(ctx context.Context) (int64, error)
	// NextID returns max(userid)+1, or 1 on an empty table.
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, u models.User) error
}

// AssetRepository reads and creates rows of the assets table.
type AssetRepository interface {
	// List returns all assets, newest (highest id) first.
	List(ctx context.Context) ([]models.Asset, error)
	Get(ctx context.Context, id int64) (models.Asset, error)
	GetByKey(ctx context.Context, bucketKey string) (models.Asset, error)
	Count(ctx context.Context) (int64, error)
	// NextID returns max(assetid)+1, or 1 on an empty table.
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, a models.Asset) error
}

// NewUserRepo returns a repository bound to the gateway.
func NewUserRepo(g *Gateway) UserRepository { return &userRepo{g: g} }

// NewAssetRepo returns a repository bound to the gateway.
func NewAssetRepo(g *Gateway) AssetRepository { return &assetRepo{g: g} }

type userRepo struct{ g *Gateway }
type assetRepo struct{ g *Gateway }

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	const q = `SELECT userid, email, lastname, firstname, bucketfolder FROM users ORDER BY userid DESC`
	rows, err := r.g.RetrieveAllRows(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.LastName, &u.FirstName, &u.BucketFolder); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) Get(ctx context.Context, id int64) (models.User, error) {
	const q = `SELECT userid, email, lastname, firstname, bucketfolder FROM users WHERE userid = ?`
	var u models.User
	err := r.g.RetrieveOneRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.LastName, &u.FirstName, &u.BucketFolder)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return u, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.g, `SELECT COUNT(*) FROM users`)
}

func (r *userRepo) NextID(ctx context.Context) (int64, error) {
	return count(ctx, r.g, `SELECT COALESCE(MAX(userid), 0) + 1 FROM users`)
}

func (r *userRepo) Insert(ctx context.Context, u models.User) error {
	const q = `INSERT INTO users (userid, email, lastname, firstname, bucketfolder) VALUES (?, ?, ?, ?, ?)`
	n, err := r.g.PerformAction(ctx, q, u.ID, u.Email, u.LastName, u.FirstName, u.BucketFolder)
	if err != nil {
		return err
	}
	if n < 1 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *assetRepo) List(ctx context.Context) ([]models.Asset, error) {
	const q = `SELECT assetid, userid, assetname, bucketkey FROM assets ORDER BY assetid DESC`
	rows, err := r.g.RetrieveAllRows(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.AssetName, &a.BucketKey); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *assetRepo) Get(ctx context.Context, id int64) (models.Asset, error) {
	const q = `SELECT assetid, userid, assetname, bucketkey FROM assets WHERE assetid = ?`
	return scanAsset(r.g.RetrieveOneRow(ctx, q, id))
}

func (r *assetRepo) GetByKey(ctx context.Context, bucketKey string) (models.Asset, error) {
	const q = `SELECT assetid, userid, assetname, bucketkey FROM assets WHERE bucketkey = ?`
	return scanAsset(r.g.RetrieveOneRow(ctx, q, bucketKey))
}

func (r *assetRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.g, `SELECT COUNT(*) FROM assets`)
}

func (r *assetRepo) NextID(ctx context.Context) (int64, error) {
	return count(ctx, r.g, `SELECT COALESCE(MAX(assetid), 0) + 1 FROM assets`)
}

func (r *assetRepo) Insert(ctx context.Context, a models.Asset) error {
	const q = `INSERT INTO assets (assetid, userid, assetname, bucketkey) VALUES (?, ?, ?, ?)`
	n, err := r.g.PerformAction(ctx, q, a.ID, a.UserID, a.AssetName, a.BucketKey)
	if err != nil {
		return err
	}
	if n < 1 {
		return ErrNoRowsAffected
	}
	return nil
}

func scanAsset(row *sql.Row) (models.Asset, error) {
	var a models.Asset
	if err := row.Scan(&a.ID, &a.UserID, &a.AssetName, &a.BucketKey); err != nil {
		return models.Asset{}, mapErr(err)
	}
	return a, nil
}

// count scans a single integer column.
func count(ctx context.Context, g *Gateway, q string) (int64, error) {
	var n int64
	if err := g.RetrieveOneRow(ctx, q).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}
