package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodyBytes bounds request bodies; every body here is a few fields
const maxBodyBytes = 1 << 16

// intParam accepts a JSON number or a numeric string
type intParam int

func (p *intParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	*p = intParam(n)
	return nil
}

type revealRequest struct {
	Reveal *bool `json:"reveal"`
}

type configureTimerRequest struct {
	TotalSeconds intParam `json:"total_seconds"`
	Mode         *string  `json:"mode"`
}

type scoreRequest struct {
	Delta  *intParam `json:"delta"`
	Reason *string   `json:"reason"`
}

func quizIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "quizId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid quiz id %q: %w", raw, errBadRequest)
	}
	return id, nil
}

// decodeBody reads an optional JSON object. An empty body leaves dst as is.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", errBadRequest)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("malformed JSON: %w", errBadRequest)
		}
		return fmt.Errorf("%v: %w", err, errBadRequest)
	}
	return nil
}
