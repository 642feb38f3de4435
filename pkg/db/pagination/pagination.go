package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const defaultPageSize = 25
const maxPageSize = 100

// Pagination binds page parameters from a query string.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	TotalSize     int64  `json:"total_size"`
}

// Limit clamps the requested page size.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return defaultPageSize
	}
	if p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}

// Offset decodes the opaque page token back into a row offset.
func (p Pagination) Offset() int {
	offset, err := decodeToken(p.PageToken)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextToken encodes the offset of the next page, or "" when the page
// returned fewer rows than the limit.
func (p Pagination) NextToken(returned int) string {
	if returned < p.Limit() {
		return ""
	}
	return encodeToken(p.Offset() + returned)
}

func encodeToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

func decodeToken(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, err
	}
	value, ok := strings.CutPrefix(string(raw), "o:")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(value)
}
