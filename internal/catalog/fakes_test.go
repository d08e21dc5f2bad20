package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/photoapp/internal/db"
	"github.com/yourorg/photoapp/internal/journal"
	"github.com/yourorg/photoapp/internal/models"
	"github.com/yourorg/photoapp/internal/storage"
)

type fakeUsers struct {
	rows     map[int64]models.User
	zeroRows bool
	countErr error
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
func (f *fakeUsers) Get(ctx context.Context, id int64) (models.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	return u, nil
}
func (f *fakeUsers) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), f.countErr
}
func (f *fakeUsers) NextID(ctx context.Context) (int64, error) {
	var max int64
	for id := range f.rows {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}
func (f *fakeUsers) Insert(ctx context.Context, u models.User) error {
	if f.zeroRows {
		return db.ErrNoRowsAffected
	}
	f.rows[u.ID] = u
	return nil
}

type fakeAssets struct {
	rows      map[int64]models.Asset
	insertErr error
}

func (f *fakeAssets) List(ctx context.Context) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
func (f *fakeAssets) Get(ctx context.Context, id int64) (models.Asset, error) {
	a, ok := f.rows[id]
	if !ok {
		return models.Asset{}, db.ErrNotFound
	}
	return a, nil
}
func (f *fakeAssets) GetByKey(ctx context.Context, key string) (models.Asset, error) {
	for _, a := range f.rows {
		if a.BucketKey == key {
			return a, nil
		}
	}
	return models.Asset{}, db.ErrNotFound
}
func (f *fakeAssets) Count(ctx context.Context) (int64, error) { return int64(len(f.rows)), nil }
func (f *fakeAssets) NextID(ctx context.Context) (int64, error) {
	var max int64
	for id := range f.rows {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}
func (f *fakeAssets) Insert(ctx context.Context, a models.Asset) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows[a.ID] = a
	return nil
}

type fakeStore struct {
	objects   map[string][]byte
	calls     int
	uploadErr error
	deleteErr error
	deleted   []string
}

func (f *fakeStore) Bucket() string { return "photoapp-test" }
func (f *fakeStore) Upload(ctx context.Context, localPath, key string) (string, error) {
	f.calls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	f.objects[key] = b
	return key, nil
}
func (f *fakeStore) Download(ctx context.Context, key, dir string) (string, error) {
	f.calls++
	b, ok := f.objects[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	tmp, err := os.CreateTemp(dir, ".dl-*")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	_, err = tmp.Write(b)
	return tmp.Name(), err
}
func (f *fakeStore) Count(ctx context.Context) (int, error) {
	f.calls++
	return len(f.objects), nil
}
func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}
func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.calls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

// script answers prompts in order.
type script struct{ answers []string }

func (s *script) Prompt(string) (string, error) {
	if len(s.answers) == 0 {
		return "", errors.New("EOF")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

type fakeViewer struct {
	shown []string
	err   error
}

func (v *fakeViewer) Show(ctx context.Context, path string) error {
	v.shown = append(v.shown, path)
	return v.err
}

type harness struct {
	cat    *Catalog
	users  *fakeUsers
	assets *fakeAssets
	store  *fakeStore
	in     *script
	out    *bytes.Buffer
	view   *fakeViewer
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	j, err := journal.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	h := &harness{
		users:  &fakeUsers{rows: map[int64]models.User{}},
		assets: &fakeAssets{rows: map[int64]models.Asset{}},
		store:  &fakeStore{objects: map[string][]byte{}},
		in:     &script{},
		out:    &bytes.Buffer{},
		view:   &fakeViewer{},
		dir:    t.TempDir(),
	}
	h.cat = New(Deps{
		Users:    h.users,
		Assets:   h.assets,
		Store:    h.store,
		Journal:  j,
		Viewer:   h.view,
		Endpoint: "db.example.com",
		In:       h.in,
		Out:      h.out,
		WorkDir:  h.dir,
	})
	return h
}

func (h *harness) answer(a ...string) { h.in.answers = append(h.in.answers, a...) }
