package records

import (
	"context"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/katalvlaran/mazerunner/ctxlog"
)

// maxBodyBytes bounds request bodies read by ServeHTTP.
const maxBodyBytes = 1 << 20

// ServeHTTP adapts Handler to net/http.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := Request{Method: r.Method}
	if q := r.URL.Query(); len(q) > 0 {
		req.Query = make(map[string]string, len(q))
		for k := range q {
			req.Query[k] = q.Get(k)
		}
	}
	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			ctxlog.FromContext(r.Context()).Warn("Failed to read request body.", "error", err)
			writeResponse(w, message(http.StatusBadRequest, "Invalid JSON format"))
			return
		}
		req.Body, req.HasBody = string(b), len(b) > 0
	}
	writeResponse(w, h.Handle(r.Context(), req))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}

// HandleAPIGateway adapts Handler to an API Gateway proxy integration.
// A null body in the event counts as missing.
func (h *Handler) HandleAPIGateway(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req := Request{
		Method:  ev.HTTPMethod,
		Query:   ev.QueryStringParameters,
		Body:    ev.Body,
		HasBody: ev.Body != "",
	}
	resp := h.Handle(ctx, req)
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       resp.Body,
	}, nil
}
