package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/json-iterator/go/extra"
	"github.com/riskibarqy/event-scoring/internal/usecase"
)

const maxBodyBytes = 1 << 20

// paramJSON accepts numbers sent as strings ("5", "7.5") because the existing
// frontend posts form values verbatim.
var paramJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	extra.RegisterFuzzyDecoders()
}

// params is the query string merged with the JSON body. Body keys win.
type params map[string]any

// ids holds every identifier a route may take from its parameters.
type ids struct {
	ID         int64 `json:"id"`
	EventID    int64 `json:"event_id"`
	ActivityID int64 `json:"activity_id"`
}

func readParams(w http.ResponseWriter, r *http.Request) (params, error) {
	out := make(params)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}

	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return out, nil
	}

	var body map[string]any
	decoder := paramJSON.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, clientError(usecase.ErrInvalidInput, "Request body too large")
		}
		return nil, clientError(usecase.ErrInvalidInput, "Invalid JSON payload")
	}
	for key, value := range body {
		out[key] = value
	}
	return out, nil
}

func (p params) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p params) str(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		b, err := paramJSON.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}

// decode round-trips the merged parameters into dst.
func (p params) decode(dst any) error {
	raw, err := paramJSON.Marshal(map[string]any(p))
	if err != nil {
		return clientError(usecase.ErrInvalidInput, "Invalid request parameters")
	}
	if err := paramJSON.Unmarshal(raw, dst); err != nil {
		return clientError(usecase.ErrInvalidInput, "Invalid request parameters")
	}
	return nil
}

func (p params) ids() (ids, error) {
	var out ids
	if err := p.decode(&out); err != nil {
		return ids{}, clientError(usecase.ErrInvalidInput, "Invalid id parameter")
	}
	return out, nil
}
