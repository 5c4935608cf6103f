package artfolio

import (
	"crypto/subtle"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const maxUploadSize = 10 << 20 // 10MB

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "too many attempts, try again later",
		})
	}
	passphrase := c.FormValue("passphrase")
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(a.Config.AdminPassphrase)) != 1 {
		a.loginLimiter.Record(c.RealIP())
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "wrong passphrase"})
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"unlocked": true})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"unlocked": false})
}

// handleAdminSession lets the front end probe whether the session is
// unlocked, and hands it the CSRF token for subsequent writes.
func handleAdminSession(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"unlocked":  IsAdmin(c),
		"csrfToken": CsrfToken(c),
	})
}

// requireAdmin guards the admin API. The SPA gets a JSON 401 rather than
// a redirect so it can show its own unlock prompt.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "admin session required"})
		}
		return next(c)
	}
}

// --- Paintings ---

func (a *App) handlePaintingCreate(c echo.Context) error {
	fields, err := paintingFormFields(c)
	if err != nil {
		return err
	}
	// A missing file falls through as empty bytes so the catalog reports
	// the required-image validation error.
	imageData, err := formImage(c, "image")
	if err != nil && err != http.ErrMissingFile {
		return err
	}
	id, err := a.Catalog.CreatePainting(fields, imageData)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]ID{"id": id})
}

func (a *App) handlePaintingUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	fields, err := paintingFormFields(c)
	if err != nil {
		return err
	}
	// The image file is optional on edit; absent means keep the stored one.
	imageData, err := formImage(c, "image")
	if err != nil && err != http.ErrMissingFile {
		return err
	}
	if err := a.Catalog.UpdatePainting(id, fields, imageData); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]ID{"id": id})
}

func (a *App) handlePaintingDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.Catalog.DeletePainting(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func paintingFormFields(c echo.Context) (PaintingFields, error) {
	year := 0
	if raw := strings.TrimSpace(c.FormValue("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return PaintingFields{}, fmt.Errorf("%w: bad year %q", ErrInvalidInput, raw)
		}
		year = parsed
	}
	return PaintingFields{
		Title:       c.FormValue("title"),
		Year:        year,
		Medium:      c.FormValue("medium"),
		Size:        c.FormValue("size"),
		Description: c.FormValue("description"),
		Tags:        strings.Split(c.FormValue("tags"), ","),
		Category:    c.FormValue("category"),
		Visibility:  Visibility(c.FormValue("visibility")),
		Color:       c.FormValue("color"),
	}, nil
}

// --- Backgrounds ---

func (a *App) handleBackgroundCreate(c echo.Context) error {
	imageData, err := formImage(c, "image")
	if err != nil && err != http.ErrMissingFile {
		return err
	}
	id, err := a.Catalog.CreateBackground(c.FormValue("name"), imageData)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]ID{"id": id})
}

func (a *App) handleBackgroundDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.Catalog.DeleteBackground(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Blog posts ---

func (a *App) handlePostCreate(c echo.Context) error {
	id, err := a.Catalog.CreateBlogPost(postFormFields(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]ID{"id": id})
}

func (a *App) handlePostUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.Catalog.UpdateBlogPost(id, postFormFields(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]ID{"id": id})
}

func (a *App) handlePostDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := a.Catalog.DeleteBlogPost(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func postFormFields(c echo.Context) PostFields {
	return PostFields{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		Excerpt: c.FormValue("excerpt"),
		Status:  PostStatus(c.FormValue("status")),
	}
}

// --- Page content ---

func (a *App) handleContentUpdate(c echo.Context) error {
	t := ContentType(c.Param("type"))
	if err := a.Catalog.SetPageContent(t, c.FormValue("content")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"type": string(t)})
}

// --- Export / import ---

func (a *App) handleExport(c echo.Context) error {
	snap, err := a.Catalog.ExportAll()
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("portfolio-backup-%d.json", time.Now().UnixMilli())
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.JSON(http.StatusOK, snap)
}

func (a *App) handleImport(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: no snapshot file provided", ErrInvalidInput)
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	result, err := a.Catalog.ImportAll(data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// formImage pulls an uploaded image file out of the multipart form.
// Returns http.ErrMissingFile when the field is absent.
func formImage(c echo.Context, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, http.ErrMissingFile
	}
	if file.Size > maxUploadSize {
		return nil, fmt.Errorf("%w: file too large (max 10MB)", ErrInvalidInput)
	}
	return readUpload(file)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
