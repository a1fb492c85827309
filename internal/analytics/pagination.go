package analytics

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// setPaginationHeaders writes X-Total-Count, X-Limit, X-Offset and an
// RFC 8288 Link header with first, prev, next and last relations.
func setPaginationHeaders(c *gin.Context, page *EventsPage) {
	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	c.Header("X-Limit", strconv.Itoa(page.Limit))
	c.Header("X-Offset", strconv.Itoa(page.Offset))
	c.Header("Link", linkHeader(c.Request.URL, page))
}

func linkHeader(u *url.URL, page *EventsPage) string {
	filters := u.Query()
	filters.Del("limit")
	filters.Del("offset")
	prefix := u.Path + "?"
	if encoded := filters.Encode(); encoded != "" {
		prefix += encoded + "&"
	}

	// Paging parameters go last so clients can rewrite them by suffix.
	build := func(offset int) string {
		return fmt.Sprintf("%slimit=%d&offset=%d", prefix, page.Limit, offset)
	}

	links := []string{fmt.Sprintf(`<%s>; rel="first"`, build(0))}
	if page.Offset > 0 {
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, build(max(0, page.Offset-page.Limit))))
	}
	if page.HasMore() {
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, build(page.Offset+page.Limit)))
	}

	last := 0
	if page.Total > 0 {
		last = int((page.Total-1)/int64(page.Limit)) * page.Limit
	}
	links = append(links, fmt.Sprintf(`<%s>; rel="last"`, build(last)))

	return strings.Join(links, ", ")
}
