package server

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"videotube/internal/models"
	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a well formed identifier.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := models.ParseID(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid "+humanizeParam(param)))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "videoId" -> "video ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// parsePageQuery reads page, limit, query, sortBy and sortType. Absent values
// take the defaults; range checks happen in the service.
func parsePageQuery(c *fiber.Ctx) (service.PageQuery, error) {
	q := service.PageQuery{
		Page:     service.DefaultPage,
		Limit:    service.DefaultLimit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}
	for name, dst := range map[string]*int{"page": &q.Page, "limit": &q.Limit} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, models.NewValidationError(name + " must be an integer")
		}
		*dst = n
	}
	return q, nil
}

// saveUpload stores the multipart file in field under the upload temp dir and
// returns its path, or "" when the field is absent. Only the extension of the
// client file name is kept.
func (s *Server) saveUpload(c *fiber.Ctx, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	dir := s.config.UploadTmpDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", models.NewInternalError(err)
	}

	path := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// removeUpload deletes a temp file written by saveUpload.
func removeUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove temp upload", slog.String("path", path), slog.String("error", err.Error()))
	}
}

// optionalString returns a pointer to the form value, or nil when the field
// was not sent.
func optionalString(c *fiber.Ctx, field string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value[field]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	if c.Request().PostArgs().Has(field) {
		v := c.FormValue(field)
		return &v
	}
	return nil
}

// queryID parses an optional identifier from the query string. An absent
// value yields uuid.Nil.
func queryID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := models.ParseID(raw)
	if err != nil {
		return uuid.Nil, models.NewValidationError("Invalid " + humanizeParam(name))
	}
	return id, nil
}
