package server

import (
	"encoding/json"
	"net/http"
	"strings"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable code and a user-facing message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code lxerrors.Code) int {
	switch {
	case code == lxerrors.ErrCodeNotFound, code == lxerrors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case code == lxerrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case code == lxerrors.ErrCodeInvalidReference:
		return http.StatusInternalServerError
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := lxerrors.GetCode(err)
	if code == "" {
		code = lxerrors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := lxerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		if code == lxerrors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: string(code), Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
