package server

import (
	"net/http/httptest"
	"testing"

	"videotube/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"videoId", "video ID"},
		{"userId", "user ID"},
		{"subscriberId", "subscriber ID"},
		{"playlistId", "playlist ID"},
		{"page", "page"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeParam(tt.param))
		})
	}
}

func TestSplitCamel(t *testing.T) {
	assert.Equal(t, []string{"channel", "Owner"}, splitCamel("channelOwner"))
	assert.Equal(t, []string{"video"}, splitCamel("video"))
}

func TestParsePageQuery(t *testing.T) {
	var got service.PageQuery
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		q, err := parsePageQuery(c)
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		got = q
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		want       service.PageQuery
	}{
		{
			name:       "defaults",
			query:      "",
			wantStatus: fiber.StatusOK,
			want:       service.PageQuery{Page: 1, Limit: 3},
		},
		{
			name:       "explicit values",
			query:      "?page=2&limit=10&query=cats&sortBy=views&sortType=asc",
			wantStatus: fiber.StatusOK,
			want:       service.PageQuery{Page: 2, Limit: 10, Query: "cats", SortBy: "views", SortType: "asc"},
		},
		{
			name:       "zero page is passed through",
			query:      "?page=0",
			wantStatus: fiber.StatusOK,
			want:       service.PageQuery{Page: 0, Limit: 3},
		},
		{
			name:       "non numeric limit",
			query:      "?limit=ten",
			wantStatus: fiber.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = service.PageQuery{}
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestQueryID(t *testing.T) {
	id := uuid.New()
	var got uuid.UUID
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		v, err := queryID(c, "userId")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		got = v
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?userId="+id.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id, got)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uuid.Nil, got)

	resp, err = app.Test(httptest.NewRequest("GET", "/?userId=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
