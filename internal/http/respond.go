package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/league"
)

const maxBodyBytes = 1 << 20

// readJSON decodes a single JSON value from the request body into dst and
// turns decoder failures into messages fit for API clients.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &typeError):
			if typeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", typeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", typeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

// writeError maps league errors onto status codes. Rejected requests carry
// their message, storage failures ask the client to retry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *league.ValidationError
	switch {
	case errors.As(err, &verr):
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, league.ErrNameTaken),
			errors.Is(err, league.ErrDuplicateParticipant),
			errors.Is(err, league.ErrInvalidStatus),
			errors.Is(err, league.ErrMatchNotReady),
			errors.Is(err, league.ErrMatchCompleted):
			status = http.StatusConflict
		}
		writeJSON(w, status, errorBody{Error: verr.Msg})
	case errors.Is(err, league.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, league.ErrStorage):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "Storage unavailable, please retry"})
	default:
		log.Error("Unhandled error", "method", r.Method, "url", r.URL.String(), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}

// intParam parses a numeric path parameter.
func intParam(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return n, nil
}

func requiredScores(name1 string, v1 *int, name2 string, v2 *int) (int, int, error) {
	if v1 == nil {
		return 0, 0, fmt.Errorf("%s is required", name1)
	}
	if v2 == nil {
		return 0, 0, fmt.Errorf("%s is required", name2)
	}
	return *v1, *v2, nil
}
