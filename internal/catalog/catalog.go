// Package catalog implements the photo catalog commands on top of the
// metadata store and object store gateways.
package catalog

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yourorg/photoapp/internal/db"
	"github.com/yourorg/photoapp/internal/journal"
	"github.com/yourorg/photoapp/internal/storage"
	"github.com/yourorg/photoapp/internal/viewer"
)

// Prompter asks the operator for one line of input.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Deps are the collaborators every command needs. All are required except Logger and WorkDir.
type Deps struct {
	Users    db.UserRepository
	Assets   db.AssetRepository
	Store    storage.ObjectStore
	Journal  *journal.Journal
	Viewer   viewer.Viewer
	Endpoint string // metadata store host shown by Stats
	In       Prompter
	Out      io.Writer
	Logger   *zap.Logger
	// WorkDir is where relative local paths resolve; empty means the process working directory.
	WorkDir string
}

// Catalog runs the operator commands.
type Catalog struct {
	Deps
}

func New(d Deps) *Catalog {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Catalog{Deps: d}
}

func (c *Catalog) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Catalog) ask(ctx context.Context, op, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fail(KindInternal, op, "", err)
	}
	s, err := c.In.Prompt(label)
	if err != nil {
		return "", fail(KindInput, op, "no input", err)
	}
	return s, nil
}

// local resolves an operator-typed path against WorkDir.
func (c *Catalog) local(p string) string {
	if c.WorkDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}
