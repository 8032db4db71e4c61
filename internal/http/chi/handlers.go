package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/book-catalog/book"
)

// Options carries the transport wiring that is not business logic
type Options struct {
	// BasePath is where the book API is rooted, e.g. /api/books
	BasePath string
	// CoversDir is served under /covers as static cover storage
	CoversDir string
	// PublicURL is the base used to resolve reference covers
	PublicURL string
	// Metrics, when set, is mounted at /metrics
	Metrics http.Handler
}

func Handlers(bookService book.UseCase, opts Options) *chi.Mux {
	// Logger
	logger := httplog.NewLogger("book-catalog", httplog.Options{
		JSON: true,
	})
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("API is running..."))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route(opts.BasePath, func(r chi.Router) {
		r.Method(http.MethodGet, "/", getBooks(bookService, logger))
		r.Method(http.MethodPost, "/", postBook(bookService, logger))
		// Development convenience; the service guards against re-seeding
		r.Method(http.MethodGet, "/seed", seedBooks(bookService, logger))
		r.Method(http.MethodGet, "/{id}", getBook(bookService, logger))
		r.Method(http.MethodPut, "/{id}", putBook(bookService, logger))
		r.Method(http.MethodDelete, "/{id}", deleteBook(bookService, logger))
		r.Method(http.MethodGet, "/{id}/cover", getBookCover(bookService, logger, opts.PublicURL))
	})

	// Fallback cover storage; inline covers never touch this path
	if opts.CoversDir != "" {
		fs := http.FileServer(http.Dir(opts.CoversDir))
		r.Handle("/covers/*", http.StripPrefix("/covers/", fs))
	}

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	return r
}
