// Command docstore runs the multi-tenant document management service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rise-and-shine/docstore/alert"
	"github.com/rise-and-shine/docstore/cfgloader"
	"github.com/rise-and-shine/docstore/filestore/miniowr"
	"github.com/rise-and-shine/docstore/http/server"
	"github.com/rise-and-shine/docstore/http/server/middleware"
	apihttp "github.com/rise-and-shine/docstore/internal/api/http"
	"github.com/rise-and-shine/docstore/internal/catalog"
	"github.com/rise-and-shine/docstore/internal/config"
	"github.com/rise-and-shine/docstore/internal/content"
	"github.com/rise-and-shine/docstore/internal/usecase/docs"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/meta"
	"github.com/rise-and-shine/docstore/outbox"
	"github.com/rise-and-shine/docstore/pg"
	"github.com/rise-and-shine/docstore/token"
	"github.com/rise-and-shine/docstore/tracing"
)

func main() {
	cfg := cfgloader.MustLoad[config.Config]()

	meta.SetServiceInfo(cfg.ServiceName, cfg.ServiceVersion, cfgloader.Environment())
	logger.SetGlobal(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	log := logger.Named("main")

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() { _ = shutdownTracer() }()

	alertProvider, err := alert.NewProvider(cfg.Alert, cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() { _ = alertProvider.Close() }()

	if err := alert.SetGlobal(cfg.Alert, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		log.Fatalx(err)
	}

	ctx := context.Background()

	db, err := pg.NewBunDB(ctx, cfg.PG)
	if err != nil {
		log.Fatalx(err)
	}
	defer func() { _ = db.Close() }()

	pool, err := pg.NewPool(ctx, cfg.PG)
	if err != nil {
		log.Fatalx(err)
	}
	defer pool.Close()

	if err := catalog.RunMigrations(ctx, db); err != nil {
		log.Fatalx(err)
	}

	fs, err := miniowr.New(cfg.Minio)
	if err != nil {
		log.Fatalx(err)
	}

	tokens, err := token.NewJWTMaker(cfg.Editor.TokenSecret)
	if err != nil {
		log.Fatalx(err)
	}

	cat := catalog.New(db)
	store := content.NewStore(fs)
	producer := outbox.NewProducer()

	upload := docs.NewUpload(db, cat, store, producer)
	router := apihttp.NewRouter(
		upload,
		docs.NewDownload(cat, store),
		docs.NewListFiles(cat),
		docs.NewListVersions(cat),
		docs.NewDelete(db, cat),
		editor.NewIssueSession(cfg.Editor, cat, tokens),
		editor.NewCallback(cat, tokens, editor.NewHTTPFetcher(), upload),
	)

	worker, err := outbox.NewWorker(cfg.Outbox, pool, logger.Named("outbox"), alertProvider)
	if err != nil {
		log.Fatalx(err)
	}

	srv := server.NewHTTPServer(cfg.Server, []server.Middleware{
		middleware.NewRecoveryMW(),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(cfg.Server.HandleTimeout),
		middleware.NewMetaInjectMW(cfg.ServiceName, cfg.ServiceVersion),
		apihttp.NewTenantResolveMW(),
		middleware.NewAlertingMW(),
		middleware.NewLoggerMW(),
		middleware.NewErrorHandlerMW(cfg.Server.HideErrorDetails),
	})
	srv.RegisterRouter(router.Register)

	go func() {
		if err := worker.Start(); err != nil {
			log.With("cause", err.Error()).Error("outbox worker stopped")
		}
	}()

	go func() {
		log.With("address", cfg.Server.Address()).Info("http server starting")
		if err := srv.Start(); err != nil {
			log.Fatalx(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	if err := srv.Stop(); err != nil {
		log.With("cause", err.Error()).Error("http server shutdown failed")
	}
	if err := worker.Stop(); err != nil {
		log.With("cause", err.Error()).Error("outbox worker shutdown failed")
	}
}
