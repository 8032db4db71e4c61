package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/book-catalog/book"
	"github.com/marcelsud/book-catalog/book/postgres"
	bookredis "github.com/marcelsud/book-catalog/book/redis"
	"github.com/marcelsud/book-catalog/config"
	"github.com/marcelsud/book-catalog/internal/http/chi"
	"github.com/marcelsud/book-catalog/metrics"
)

const TIMEOUT = 30 * time.Second

/* main is where all the wiring happens: dependencies are started,
 * configured and handed to the packages holding the business logic.
 * Imports flow one direction only: the binary imports the business
 * layer, which imports the storage layer
 */
func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	pg, err := postgres.NewRepository(cfg.DatabaseURL)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := pg.CreateTable(ctx); err != nil {
		fmt.Println(err)
		return
	}

	/* The Redis cache is optional; without REDIS_ADDR the service talks
	 * straight to Postgres
	 */
	var repo book.Repository = pg
	if cfg.CacheEnabled() {
		cache, err := bookredis.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL(), pg)
		if err != nil {
			fmt.Println(err)
			return
		}
		repo = cache
	}
	defer repo.Close(ctx)

	s := book.NewServiceWithTimeout(repo, cfg.StoreTimeout())
	if cfg.CatalogFile != "" {
		catalog, err := book.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		s.Catalog = catalog
	}

	exporter, err := metrics.NewOTelExporter(metrics.NewPostgresCollector(pg.DB))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	r := chi.Handlers(s, chi.Options{
		BasePath:  cfg.APIBasePath,
		CoversDir: cfg.CoversDir,
		PublicURL: cfg.PublicURL,
		Metrics:   exporter.Handler(),
	})
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server")
	}
}
