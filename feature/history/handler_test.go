package history

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleListDisabled(t *testing.T) {
	app := fiber.New()
	svc := NewService(nil, nil, "merges", zap.NewNop())
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/history", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleList(t *testing.T) {
	app := fiber.New()
	gormDB, sqlMock := setupMockDB(t)
	svc := NewService(gormDB, nil, "merges", zap.NewNop())
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)

	rows := sqlmock.NewRows([]string{"id", "sources", "rows_out"}).
		AddRow("job-1", "a.xlsx,b.xlsx", 7)
	sqlMock.ExpectQuery("SELECT \\* FROM `merge_jobs`").WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/history", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var jobs []MergeJob
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, 7, jobs[0].RowsOut)
}

func TestHandleDownloadUnknownJob(t *testing.T) {
	app := fiber.New()
	gormDB, _ := setupMockDB(t)
	// No archive store configured: every download misses.
	svc := NewService(gormDB, nil, "merges", zap.NewNop())
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/history/nope/download", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(nil, nil, "merges", zap.NewNop())

	assert.Equal(t, "history", feature.Name())
	// Without a database the feature stays unloaded.
	assert.False(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
