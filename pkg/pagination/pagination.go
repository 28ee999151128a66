// Package pagination provides size/page query parameters for the paginated
// CGI-Clinics list endpoints.
package pagination

import (
	"net/url"
	"strconv"
)

const DefaultSize = 20

// Page holds pagination parameters for a list request. Pages are zero-based,
// matching the API. A zero Size means "use the default".
type Page struct {
	Size int
	Page int
}

// Normalized returns a copy with DefaultSize applied when Size is unset and a
// non-negative page number. A caller-chosen size is forwarded as given; the
// remote service is the one that enforces its limits.
func (p Page) Normalized() Page {
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

// Query writes the size and page parameters into q. Values are forwarded
// verbatim; call Normalized first when defaults are wanted.
func (p Page) Query(q url.Values) url.Values {
	if q == nil {
		q = url.Values{}
	}
	q.Set("size", strconv.Itoa(p.Size))
	q.Set("page", strconv.Itoa(p.Page))
	return q
}

// Next returns the parameters for the following page.
func (p Page) Next() Page {
	p.Page++
	return p
}

// HasNext reports whether a page of the given length can be followed by
// another. A short page means the listing is exhausted.
func (p Page) HasNext(received int) bool {
	return received == p.Size && p.Size > 0
}
