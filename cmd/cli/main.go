package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/marcelsud/book-catalog/book"
	"github.com/marcelsud/book-catalog/book/postgres"
	"github.com/marcelsud/book-catalog/config"
)

/* Maintenance CLI for the catalog
 *
 *   cli seed          seed the starter catalog into an empty store
 *   cli list          print the catalog, newest first
 */
func main() {
	flag.Parse()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx := context.Background()

	repo, err := postgres.NewRepository(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer repo.Close(ctx)

	s := book.NewServiceWithTimeout(repo, cfg.StoreTimeout())
	if cfg.CatalogFile != "" {
		catalog, err := book.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		s.Catalog = catalog
	}

	switch flag.Arg(0) {
	case "seed":
		if err := repo.CreateTable(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		count, err := s.SeedIfEmpty(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("seeded %d books\n", count)
	case "list":
		all, err := s.List(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tGENRE\tYEAR")
		for _, b := range all {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", b.ID, b.Title, b.Author, b.Genre, b.Year)
		}
		w.Flush()
	default:
		fmt.Fprintln(os.Stderr, "usage: cli [seed|list]")
		os.Exit(2)
	}
}
