package merge

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	coremerge "workbook-merger/core/merge"
	"workbook-merger/core/workbook"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	app := fiber.New()
	svc := NewService(zap.NewNop(), coremerge.DefaultOptions(), nil)
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app
}

// buildXLSX serializes rows into workbook bytes for upload fixtures.
func buildXLSX(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", ref, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	name string
	data []byte
}

func newMergeRequest(t *testing.T, options string, uploads []upload) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if options != "" {
		require.NoError(t, w.WriteField("options", options))
	}
	for _, u := range uploads {
		fw, err := w.CreateFormFile("files", u.name)
		require.NoError(t, err)
		_, err = fw.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleMerge(t *testing.T) {
	app := setupTestApp(t)

	a := buildXLSX(t,
		[]interface{}{"ID", "Name", "Amount"},
		[]interface{}{1, "Alice", 10})
	b := buildXLSX(t,
		[]interface{}{"ID", "Amount", "Note"},
		[]interface{}{1, 20, "late"})

	body, contentType := newMergeRequest(t, `{"key_columns":["ID"],"policy":"last_wins"}`,
		[]upload{{"a.xlsx", a}, {"b.xlsx", b}})

	req := httptest.NewRequest("POST", "/merge", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(
		resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="reports_`))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	sheets, err := workbook.Decode("merged.xlsx", data, workbook.DefaultDecodeOptions())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, []string{"ID", "Name", "Amount", "Note"}, sheets[0].Headers)
	require.Len(t, sheets[0].Rows, 1)
	assert.Equal(t, workbook.NewNumber(20), sheets[0].Rows[0].Cell(2))
}

func TestHandleMergeReportQuery(t *testing.T) {
	app := setupTestApp(t)

	a := buildXLSX(t, []interface{}{"ID"}, []interface{}{1})
	body, contentType := newMergeRequest(t, "", []upload{{"a.xlsx", a}})

	req := httptest.NewRequest("POST", "/merge?report=json", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload reportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 1, payload.Report.Summary.RowsOut)
}

func TestHandleMergeWithoutFiles(t *testing.T) {
	app := setupTestApp(t)

	body, contentType := newMergeRequest(t, "", nil)
	req := httptest.NewRequest("POST", "/merge", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleMergeBadOptions(t *testing.T) {
	app := setupTestApp(t)

	a := buildXLSX(t, []interface{}{"ID"}, []interface{}{1})
	body, contentType := newMergeRequest(t, `{"policy":"newest_wins"}`, []upload{{"a.xlsx", a}})

	req := httptest.NewRequest("POST", "/merge", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleMergeUnreadableUpload(t *testing.T) {
	app := setupTestApp(t)

	body, contentType := newMergeRequest(t, "",
		[]upload{{"junk.xlsx", []byte("not a workbook")}})

	req := httptest.NewRequest("POST", "/merge", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload["error"], "junk.xlsx")
}

func TestHandleReport(t *testing.T) {
	app := setupTestApp(t)

	a := buildXLSX(t,
		[]interface{}{"ID", "V"},
		[]interface{}{1, "x"},
		[]interface{}{2, "y"})
	b := buildXLSX(t,
		[]interface{}{"ID", "V"},
		[]interface{}{1, "z"})

	body, contentType := newMergeRequest(t, `{"key_columns":["ID"]}`, []upload{{"a.xlsx", a}, {"b.xlsx", b}})

	req := httptest.NewRequest("POST", "/merge/report", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload reportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, []string{"ID", "V"}, payload.Headers)
	require.NotNil(t, payload.Report)
	assert.Equal(t, 3, payload.Report.Summary.RowsIn)
	assert.Equal(t, 2, payload.Report.Summary.RowsOut)
	assert.Equal(t, 1, payload.Report.Summary.Conflicts)
	assert.Empty(t, payload.JobID)
}

func TestHandleOptions(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("GET", "/merge/options", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var opts coremerge.Options
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opts))
	assert.True(t, opts.HeaderRow)
	assert.Equal(t, coremerge.PolicyFirstWins, opts.Policy)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(zap.NewNop(), coremerge.DefaultOptions(), nil)

	assert.Equal(t, "merge", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
}
