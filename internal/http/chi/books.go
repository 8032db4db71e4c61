package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/book-catalog/book"
	"github.com/marcelsud/book-catalog/book/cover"
	"github.com/rs/zerolog"
)

/* HTTP layer DTOs for the book API
 * Separate from the domain entity to avoid leaking internal structure;
 * the field names here are the public contract
 */

// bookRequest represents the incoming book payload
type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
	Cover  string `json:"cover"`
}

// bookResponse represents a book in the API
type bookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Year      int       `json:"year"`
	Cover     string    `json:"cover"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// errorResponse is the stable error envelope crossing the boundary
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Year:      b.Year,
		Cover:     b.Cover,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// getBooks handles GET {base}/
func getBooks(bookService book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := bookService.List(r.Context())
		if err != nil {
			respondError(w, logger, "listBooks", err)
			return
		}
		result := make([]bookResponse, 0, len(all))
		for _, b := range all {
			result = append(result, toResponse(b))
		}
		respondJSON(w, http.StatusOK, result)
	})
}

// getBook handles GET {base}/{id}
func getBook(bookService book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := bookService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, logger, "getBook", err)
			return
		}
		respondJSON(w, http.StatusOK, toResponse(b))
	})
}

// postBook handles POST {base}/
func postBook(bookService book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
			return
		}
		b, err := bookService.Create(r.Context(), br.Title, br.Author, br.Genre, br.Year, br.Cover)
		if err != nil {
			respondError(w, logger, "createBook", err)
			return
		}
		respondJSON(w, http.StatusCreated, toResponse(b))
	})
}

// putBook handles PUT {base}/{id}
func putBook(bookService book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
			return
		}
		b, err := bookService.Update(r.Context(), chi.URLParam(r, "id"), br.Title, br.Author, br.Genre, br.Year, br.Cover)
		if err != nil {
			respondError(w, logger, "updateBook", err)
			return
		}
		respondJSON(w, http.StatusOK, toResponse(b))
	})
}

// deleteBook handles DELETE {base}/{id}
func deleteBook(bookService book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := bookService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, logger, "deleteBook", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
	})
}

// seedBooks handles GET {base}/seed
func seedBooks(bookService book.UseCase, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := bookService.SeedIfEmpty(r.Context())
		if err != nil {
			respondError(w, logger, "seedBooks", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Seeded successfully",
			"count":   count,
		})
	})
}

/* getBookCover handles GET {base}/{id}/cover
 * Resolves the stored cover to a displayable location: inline covers are
 * served directly, references redirect to the resolved URL
 */
func getBookCover(bookService book.UseCase, logger zerolog.Logger, publicURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := bookService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, logger, "getBookCover", err)
			return
		}

		c := cover.Parse(b.Cover)
		switch c.Kind() {
		case cover.Empty:
			writeError(w, http.StatusNotFound, "not_found", "book has no cover")
		case cover.Inline:
			mimetype, data, err := c.Decode()
			if err != nil {
				respondError(w, logger, "getBookCover", err)
				return
			}
			w.Header().Set("Content-Type", mimetype)
			w.Write(data)
		default:
			http.Redirect(w, r, c.Resolve(publicURL), http.StatusTemporaryRedirect)
		}
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: code, Message: message}})
}

/* respondError maps domain errors to status codes and stable error codes
 * Internal details are logged with operation context, never returned
 */
func respondError(w http.ResponseWriter, logger zerolog.Logger, op string, err error) {
	switch {
	case book.IsValidation(err):
		logger.Warn().Err(err).Str("op", op).Msg("validation failed")
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, book.ErrNotFound):
		logger.Warn().Str("op", op).Msg("book not found")
		writeError(w, http.StatusNotFound, "not_found", "book not found")
	case errors.Is(err, book.ErrAlreadySeeded):
		logger.Warn().Str("op", op).Msg("seed refused, store is not empty")
		writeError(w, http.StatusBadRequest, "already_seeded", "books already exist, not seeding again")
	case errors.Is(err, book.ErrStoreUnavailable):
		logger.Error().Err(err).Str("op", op).Msg("store unavailable")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "store unavailable")
	default:
		logger.Error().Err(err).Str("op", op).Msg("operation failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
