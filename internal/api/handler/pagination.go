package handler

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pageEnvelope is the uniform pagination contract shared by every listing
// endpoint: a structured envelope, not a bare list, so clients can tell
// "no more pages" apart from an error.
type pageEnvelope struct {
	TotalCount int64   `json:"total_count"`
	Count      int     `json:"count"`
	Next       *string `json:"next"`
	Previous   *string `json:"previous"`
	Results    any     `json:"results"`
}

// pageQuery reads the page and page_size query parameters. Values are left
// unclamped here; the service owns the default and the cap.
func pageQuery(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	return page, pageSize
}

// newPageEnvelope assembles the envelope, deriving next/previous links from
// the request URL so all other query parameters survive page navigation.
func newPageEnvelope(c echo.Context, results any, count int, totalCount int64, page, pageSize int) pageEnvelope {
	env := pageEnvelope{
		TotalCount: totalCount,
		Count:      count,
		Results:    results,
	}

	if int64(page*pageSize) < totalCount {
		env.Next = pageLink(c.Request().URL, page+1)
	}
	if page > 1 {
		env.Previous = pageLink(c.Request().URL, page-1)
	}
	return env
}

func pageLink(u *url.URL, page int) *string {
	link := *u
	q := link.Query()
	q.Set("page", strconv.Itoa(page))
	link.RawQuery = q.Encode()
	s := link.String()
	return &s
}
