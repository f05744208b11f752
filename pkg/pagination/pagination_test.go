package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParse(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", DefaultPage, DefaultLimit},
		{"explicit", "page=3&limit=50", 3, 50},
		{"zero page falls back", "page=0", DefaultPage, DefaultLimit},
		{"negative limit falls back", "limit=-5", DefaultPage, DefaultLimit},
		{"malformed values fall back", "page=abc&limit=xyz", DefaultPage, DefaultLimit},
		{"limit capped", "limit=9999", DefaultPage, MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(queryContext(t, tc.query))
			assert.Equal(t, tc.wantPage, got.Page)
			assert.Equal(t, tc.wantLimit, got.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestEnvelope(t *testing.T) {
	items := []string{"a", "b"}
	got := Params{Page: 2, Limit: 10}.Envelope("rows", items, 42)

	assert.Equal(t, map[string]interface{}{
		"rows":  items,
		"total": int64(42),
		"page":  2,
		"limit": 10,
	}, got)
}
