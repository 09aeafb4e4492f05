package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/katalvlaran/mazerunner/ctxlog"
	"github.com/katalvlaran/mazerunner/pipeline"
)

// Processor handles a single notification.
type Processor interface {
	Process(ctx context.Context, n pipeline.Notification) (pipeline.Outcome, error)
}

// outcomeView is the JSON shape of a pipeline.Outcome.
type outcomeView struct {
	Bucket    string `json:"bucket"`
	Key       string `json:"key"`
	TargetKey string `json:"target_key,omitempty"`
	Status    string `json:"status"`
	Steps     int    `json:"iterations,omitempty"`
	Length    int    `json:"length_of_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

func viewOf(o pipeline.Outcome) outcomeView {
	v := outcomeView{
		Bucket:    o.Notification.Bucket,
		Key:       o.Notification.Key,
		TargetKey: o.TargetKey,
		Status:    o.Status.String(),
		Steps:     o.Metrics.Steps,
		Length:    o.Metrics.PathLength,
	}
	if o.Err != nil {
		v.Error = o.Err.Error()
	}
	return v
}

// HTTPHandler accepts a JSON notification {"bucket":..., "key":...} by POST
// and processes it synchronously.
type HTTPHandler struct {
	proc Processor
}

// NewHTTPHandler returns an HTTPHandler that hands notifications to proc.
func NewHTTPHandler(proc Processor) *HTTPHandler {
	return &HTTPHandler{proc: proc}
}

// ServeHTTP decodes one notification, processes it and writes the outcome.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
		return
	}
	var n pipeline.Notification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&n); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format"})
		return
	}

	out, err := h.proc.Process(r.Context(), n)
	code := http.StatusOK
	switch {
	case errors.Is(err, pipeline.ErrInvalidNotification):
		code = http.StatusBadRequest
	case err != nil:
		ctxlog.FromContext(r.Context()).Error("Error processing maze object.", "bucket", n.Bucket, "key", n.Key, "error", err)
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, viewOf(out))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
