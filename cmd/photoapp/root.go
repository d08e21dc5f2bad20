package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourorg/photoapp/internal/catalog"
	"github.com/yourorg/photoapp/internal/config"
	"github.com/yourorg/photoapp/internal/db"
	"github.com/yourorg/photoapp/internal/journal"
	"github.com/yourorg/photoapp/internal/logging"
	"github.com/yourorg/photoapp/internal/metrics"
	"github.com/yourorg/photoapp/internal/shell"
	"github.com/yourorg/photoapp/internal/storage"
	"github.com/yourorg/photoapp/internal/viewer"
)

// errStartup signals a fatal startup failure whose banner was already printed.
var errStartup = errors.New("startup failed")

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:           "photoapp",
		Short:         "Photo catalog backed by an object store and a relational database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), in, out, configFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "settings file; prompted for when omitted")
	return cmd
}

func run(ctx context.Context, in io.Reader, out io.Writer, configFile string) error {
	fmt.Fprintln(out, "** Welcome to PhotoApp **")
	fmt.Fprintln(out)

	env, err := config.LoadEnv()
	if err != nil {
		return fatal(out, err.Error())
	}
	log := logging.New(env.LogLevel)
	defer log.Sync()

	sh := shell.New(in, out, log)
	if configFile == "" {
		fmt.Fprintln(out, "What config file to use for this session?")
		fmt.Fprintf(out, "Press ENTER to use default (%s),\n", config.DefaultFile)
		fmt.Fprintln(out, "otherwise enter name of config file>")
		s, err := sh.Prompt("")
		if err != nil && !errors.Is(err, io.EOF) {
			return fatal(out, err.Error())
		}
		configFile = strings.TrimSpace(s)
		if configFile == "" {
			configFile = config.DefaultFile
		}
	}

	settings, err := config.Load(configFile, env)
	if errors.Is(err, config.ErrMissingFile) {
		return fatal(out, fmt.Sprintf("config file '%s' does not exist, exiting", configFile))
	}
	if err != nil {
		return fatal(out, err.Error())
	}

	if env.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(env.MetricsAddr); err != nil {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal the default handler is restored, so a second one kills the process.
	context.AfterFunc(ctx, stop)

	store, err := storage.New(ctx, settings.S3)
	if err != nil {
		return fatal(out, "unable to access object store: "+err.Error())
	}

	pool, err := db.Connect(ctx, settings.DB)
	if err != nil {
		log.Error("database connect", zap.Stringer("db", settings.DB), zap.Error(err))
		return fatal(out, "unable to connect to database, exiting")
	}
	defer pool.Close()

	jr, err := journal.Open(env.JournalDir)
	if err != nil {
		return fatal(out, "unable to open upload journal: "+err.Error())
	}
	defer jr.Close()

	g := pool.Gateway()
	cat := catalog.New(catalog.Deps{
		Users:    db.NewUserRepo(g),
		Assets:   db.NewAssetRepo(g),
		Store:    store,
		Journal:  jr,
		Viewer:   viewer.NewLauncher(env.Viewer),
		Endpoint: settings.DB.Host,
		In:       sh,
		Out:      out,
		Logger:   log,
	})

	res, err := cat.Reconcile(ctx)
	if err != nil {
		log.Warn("reconcile sweep failed", zap.Error(err))
	} else if res != (catalog.ReconcileResult{}) {
		log.Info("reconcile sweep", zap.Int("committed", res.Committed), zap.Int("removed", res.Removed), zap.Int("failed", res.Failed))
	}

	log.Info("session started", zap.String("bucket", store.Bucket()), zap.Stringer("db", settings.DB))
	if err := sh.Run(ctx, cat); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("command loop", zap.Error(err))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "** done **")
	return nil
}

func fatal(out io.Writer, msg string) error {
	fmt.Fprintf(out, "**ERROR: %s\n", msg)
	return errStartup
}
