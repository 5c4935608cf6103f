package artfolio

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// paintingView is the JSON shape the gallery consumes: painting metadata
// plus URLs for the three image variants.
type paintingView struct {
	Painting
	ThumbnailURL   string `json:"thumbnailUrl"`
	DisplayURL     string `json:"displayUrl"`
	PlaceholderURL string `json:"placeholderUrl"`
}

type backgroundView struct {
	Background
	ImageURL string `json:"imageUrl"`
}

func paintingViews(paintings []Painting) []paintingView {
	views := make([]paintingView, 0, len(paintings))
	for _, p := range paintings {
		views = append(views, paintingView{
			Painting:       p,
			ThumbnailURL:   fmt.Sprintf("/api/paintings/%d/thumbnail", p.ID),
			DisplayURL:     fmt.Sprintf("/api/paintings/%d/display", p.ID),
			PlaceholderURL: fmt.Sprintf("/api/paintings/%d/placeholder", p.ID),
		})
	}
	return views
}

func (a *App) handlePaintings(c echo.Context) error {
	paintings, err := a.Catalog.ListPaintings(IsAdmin(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paintingViews(paintings))
}

func (a *App) handlePaintingImage(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := a.Catalog.GetPainting(id)
	if err != nil {
		return err
	}
	// Private paintings do not leak through their image URLs.
	if p.Visibility != VisibilityPublic && !IsAdmin(c) {
		return ErrNotFound
	}
	var data []byte
	switch c.Param("variant") {
	case "thumbnail":
		data = p.Thumbnail
	case "display":
		data = p.Display
	case "placeholder":
		data = p.Placeholder
	default:
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (a *App) handleBackgrounds(c echo.Context) error {
	backgrounds, err := a.Catalog.ListBackgrounds()
	if err != nil {
		return err
	}
	views := make([]backgroundView, 0, len(backgrounds))
	for _, b := range backgrounds {
		views = append(views, backgroundView{
			Background: b,
			ImageURL:   fmt.Sprintf("/api/backgrounds/%d/image", b.ID),
		})
	}
	return c.JSON(http.StatusOK, views)
}

func (a *App) handleBackgroundImage(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b, err := a.Catalog.GetBackground(id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", b.Image)
}

func (a *App) handlePosts(c echo.Context) error {
	posts, err := a.Catalog.ListBlogPosts(IsAdmin(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleContent(c echo.Context) error {
	content, err := a.Catalog.PageContent(ContentType(c.Param("type")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"type":    c.Param("type"),
		"content": content,
	})
}

func paramID(c echo.Context) (ID, error) {
	raw, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", ErrInvalidInput, c.Param("id"))
	}
	return ID(raw), nil
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDecode),
		errors.Is(err, ErrEncode),
		errors.Is(err, ErrBadSnapshot):
		code = http.StatusBadRequest
	default:
		if he, ok := err.(*echo.HTTPError); ok {
			a.Echo.DefaultHTTPErrorHandler(he, c)
			return
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = c.JSON(code, map[string]string{"error": "internal error"})
		return
	}
	_ = c.JSON(code, map[string]string{"error": err.Error()})
}
