// Package records exposes the solve metadata store as a small CRUD API.
//
// Handler is transport neutral: it maps a Request to a Response. The HTTP
// and API Gateway adapters in this package translate to and from it.
//
//	GET    ?file_name=<id>   200 record | 400 | 404 | 500
//	POST   {"file_name":...} 201 | 400 | 409 | 500
//	DELETE ?file_name=<id>   200 | 400 | 404 | 500
//	other                    405
//
// Response bodies are always JSON: either an object ({"error": ...} or the
// record) or a JSON string message.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/storage"
)

// Request is a transport-neutral API call.
type Request struct {
	Method string
	// Query is nil when the call carried no query string at all.
	Query map[string]string
	Body  string
	// HasBody distinguishes an absent body from an empty one.
	HasBody bool
}

// Response is a transport-neutral API answer. Body is JSON.
type Response struct {
	StatusCode int
	Body       string
}

// Handler serves record CRUD calls against a RecordStore.
type Handler struct {
	store storage.RecordStore
}

// NewHandler returns a Handler backed by store.
func NewHandler(store storage.RecordStore) *Handler {
	return &Handler{store: store}
}

// Handle dispatches req by method.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch req.Method {
	case http.MethodGet:
		return h.get(ctx, req)
	case http.MethodPost:
		return h.create(ctx, req)
	case http.MethodDelete:
		return h.delete(ctx, req)
	default:
		return message(http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func (h *Handler) get(ctx context.Context, req Request) Response {
	id, resp, ok := fileNameParam(req, true)
	if !ok {
		return resp
	}
	rec, err := h.store.GetRecord(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return errorBody(http.StatusNotFound, "Record not found")
	case err != nil:
		ctxlog.FromContext(ctx).Error("Error retrieving record.", "file_name", id, "error", err)
		return errorBody(http.StatusInternalServerError, fmt.Sprintf("Error retrieving item: %v", err))
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return errorBody(http.StatusInternalServerError, fmt.Sprintf("Unexpected error occurred: %v", err))
	}
	return Response{StatusCode: http.StatusOK, Body: string(b)}
}

func (h *Handler) create(ctx context.Context, req Request) Response {
	if !req.HasBody {
		return message(http.StatusBadRequest, "Missing request body")
	}
	var rec storage.Record
	if err := json.Unmarshal([]byte(req.Body), &rec); err != nil || rec == nil {
		return message(http.StatusBadRequest, "Invalid JSON format")
	}
	if _, ok := rec[storage.IDField]; !ok {
		return message(http.StatusBadRequest, "Missing file_name in request body")
	}
	id, err := rec.ID()
	if err != nil {
		return message(http.StatusBadRequest, "file_name must be a non-empty string")
	}

	err = h.store.CreateRecord(ctx, rec)
	switch {
	case errors.Is(err, storage.ErrConflict):
		return message(http.StatusConflict, fmt.Sprintf("Item with file_name %s already exists.", id))
	case err != nil:
		ctxlog.FromContext(ctx).Error("Error inserting record.", "file_name", id, "error", err)
		return message(http.StatusInternalServerError, fmt.Sprintf("Error inserting item: %v", err))
	}
	return message(http.StatusCreated, "Item created successfully")
}

func (h *Handler) delete(ctx context.Context, req Request) Response {
	id, resp, ok := fileNameParam(req, false)
	if !ok {
		return resp
	}
	_, err := h.store.DeleteRecord(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return message(http.StatusNotFound, fmt.Sprintf("Item with file_name %s not found.", id))
	case err != nil:
		ctxlog.FromContext(ctx).Error("Error deleting record.", "file_name", id, "error", err)
		return message(http.StatusInternalServerError, fmt.Sprintf("Error deleting item: %v", err))
	}
	return message(http.StatusOK, "Item deleted successfully")
}

// fileNameParam extracts the file_name query parameter. The empty-value
// response is an error object for GET and a plain message for DELETE.
func fileNameParam(req Request, errorObject bool) (string, Response, bool) {
	if len(req.Query) == 0 {
		return "", errorBody(http.StatusBadRequest, "Missing query parameters"), false
	}
	id, ok := req.Query[storage.IDField]
	if !ok {
		return "", errorBody(http.StatusBadRequest, "Missing query parameter: file_name"), false
	}
	if id == "" {
		if errorObject {
			return "", errorBody(http.StatusBadRequest, "file_name cannot be empty"), false
		}
		return "", message(http.StatusBadRequest, "file_name cannot be empty"), false
	}
	return id, Response{}, true
}

func message(code int, msg string) Response {
	b, _ := json.Marshal(msg)
	return Response{StatusCode: code, Body: string(b)}
}

func errorBody(code int, msg string) Response {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return Response{StatusCode: code, Body: string(b)}
}
