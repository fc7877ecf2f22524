package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsForQuery(t *testing.T, query string, extract func(c *fiber.Ctx) *Params) *Params {
	t.Helper()

	var got *Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = extract(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, got)
	return got
}

func TestGetParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "", GetParams)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestGetParamsClampsBadValues(t *testing.T) {
	params := paramsForQuery(t, "?page=-3&limit=0", GetParams)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)

	params = paramsForQuery(t, "?page=2&limit=9999", GetParams)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, MaxLimit, params.Limit)
	assert.Equal(t, MaxLimit, params.Offset)
}

func TestGetPagePinsLimit(t *testing.T) {
	params := paramsForQuery(t, "?page=3&limit=50", func(c *fiber.Ctx) *Params {
		return GetPage(c, DashboardLimit)
	})
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, DashboardLimit, params.Limit, "limit query param is ignored")
	assert.Equal(t, 10, params.Offset)
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(New(2, 5), 12)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(12), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(New(1, 5), 5)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	meta = GetMeta(New(1, 5), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	resp := NewResponse(data, New(1, 2), 4)
	assert.Equal(t, data, resp.Data)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
