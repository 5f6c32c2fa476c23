package pagination

import (
	"net/url"
	"strconv"
)

// Strategy is a named pagination scheme: a function from a page index and
// page size to the query parameters of the request for that page.
type Strategy struct {
	Name   string
	Params func(pageIndex, pageSize int) url.Values
}

// DefaultStrategies returns the candidate schemes in priority order.
// Every scheme keeps the limit parameter so servers that honor only the
// limit still return a bounded page.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{
			Name: "offset",
			Params: func(pageIndex, pageSize int) url.Values {
				return url.Values{
					"limit":  {strconv.Itoa(pageSize)},
					"offset": {strconv.Itoa(pageIndex * pageSize)},
				}
			},
		},
		{
			Name: "page_zero_based",
			Params: func(pageIndex, pageSize int) url.Values {
				return url.Values{
					"limit": {strconv.Itoa(pageSize)},
					"page":  {strconv.Itoa(pageIndex)},
				}
			},
		},
		{
			Name: "page_one_based",
			Params: func(pageIndex, pageSize int) url.Values {
				return url.Values{
					"limit": {strconv.Itoa(pageSize)},
					"page":  {strconv.Itoa(pageIndex + 1)},
				}
			},
		},
	}
}
