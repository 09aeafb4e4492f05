package records_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mazerunner/records"
	"github.com/katalvlaran/mazerunner/storage"
)

// brokenStore fails every call with a backend error.
type brokenStore struct{ err error }

func (b brokenStore) CreateRecord(context.Context, storage.Record) error { return b.err }
func (b brokenStore) GetRecord(context.Context, string) (storage.Record, error) {
	return nil, b.err
}
func (b brokenStore) DeleteRecord(context.Context, string) (storage.Record, error) {
	return nil, b.err
}

func seeded(t *testing.T) *storage.Memory {
	t.Helper()
	st := storage.NewMemory()
	require.NoError(t, st.CreateRecord(context.Background(), storage.Record{
		storage.IDField: "processed_a.csv",
		"stats":         map[string]any{"iterations": 9, "length_of_path": 9},
	}))
	return st
}

func q(id string) map[string]string { return map[string]string{storage.IDField: id} }

func TestHandle_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		req      records.Request
		wantCode int
		wantBody string
	}{
		{"GetFound", records.Request{Method: "GET", Query: q("processed_a.csv")}, 200, ""},
		{"GetNoQuery", records.Request{Method: "GET"}, 400, `{"error":"Missing query parameters"}`},
		{"GetNoFileName", records.Request{Method: "GET", Query: map[string]string{"x": "1"}}, 400, `{"error":"Missing query parameter: file_name"}`},
		{"GetEmpty", records.Request{Method: "GET", Query: q("")}, 400, `{"error":"file_name cannot be empty"}`},
		{"GetMissing", records.Request{Method: "GET", Query: q("nope")}, 404, `{"error":"Record not found"}`},

		{"PostCreated", records.Request{Method: "POST", Body: `{"file_name":"b.csv","stats":{}}`, HasBody: true}, 201, `"Item created successfully"`},
		{"PostNoBody", records.Request{Method: "POST"}, 400, `"Missing request body"`},
		{"PostBadJSON", records.Request{Method: "POST", Body: `{`, HasBody: true}, 400, `"Invalid JSON format"`},
		{"PostArray", records.Request{Method: "POST", Body: `[1]`, HasBody: true}, 400, `"Invalid JSON format"`},
		{"PostNoFileName", records.Request{Method: "POST", Body: `{"stats":{}}`, HasBody: true}, 400, `"Missing file_name in request body"`},
		{"PostEmptyFileName", records.Request{Method: "POST", Body: `{"file_name":""}`, HasBody: true}, 400, ""},
		{"PostDuplicate", records.Request{Method: "POST", Body: `{"file_name":"processed_a.csv"}`, HasBody: true}, 409, `"Item with file_name processed_a.csv already exists."`},

		{"DeleteOK", records.Request{Method: "DELETE", Query: q("processed_a.csv")}, 200, `"Item deleted successfully"`},
		{"DeleteMissing", records.Request{Method: "DELETE", Query: q("nope")}, 404, `"Item with file_name nope not found."`},
		{"DeleteNoQuery", records.Request{Method: "DELETE"}, 400, `{"error":"Missing query parameters"}`},
		{"DeleteEmpty", records.Request{Method: "DELETE", Query: q("")}, 400, `"file_name cannot be empty"`},

		{"Put", records.Request{Method: "PUT"}, 405, `"Method Not Allowed"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := records.NewHandler(seeded(t))
			resp := h.Handle(context.Background(), tc.req)
			assert.Equal(t, tc.wantCode, resp.StatusCode)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, resp.Body)
			}
			assert.True(t, json.Valid([]byte(resp.Body)), "body %q is not JSON", resp.Body)
		})
	}
}

func TestHandle_GetReturnsRecord(t *testing.T) {
	h := records.NewHandler(seeded(t))
	resp := h.Handle(context.Background(), records.Request{Method: "GET", Query: q("processed_a.csv")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"file_name":"processed_a.csv","stats":{"iterations":9,"length_of_path":9}}`, resp.Body)
}

func TestHandle_BackendErrors(t *testing.T) {
	h := records.NewHandler(brokenStore{err: errors.New("table offline")})
	ctx := context.Background()

	for _, req := range []records.Request{
		{Method: "GET", Query: q("a")},
		{Method: "POST", Body: `{"file_name":"a"}`, HasBody: true},
		{Method: "DELETE", Query: q("a")},
	} {
		resp := h.Handle(ctx, req)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, req.Method)
		assert.Contains(t, resp.Body, "table offline", req.Method)
	}
}

func TestServeHTTP(t *testing.T) {
	st := seeded(t)
	srv := httptest.NewServer(records.NewHandler(st))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/records", "application/json", strings.NewReader(`{"file_name":"c.csv"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp, err = http.Get(srv.URL + "/records?file_name=c.csv")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"file_name":"c.csv"}`, string(body))

	resp, err = http.Get(srv.URL + "/records")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/records?file_name=c.csv", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rec := httptest.NewRecorder()
	records.NewHandler(st).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/records", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"Missing request body"`, rec.Body.String())
}

func TestHandleAPIGateway(t *testing.T) {
	h := records.NewHandler(seeded(t))
	resp, err := h.HandleAPIGateway(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            "GET",
		QueryStringParameters: q("processed_a.csv"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, `"length_of_path":9`)

	resp, err = h.HandleAPIGateway(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "PATCH"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
