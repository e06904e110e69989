// Package api provides chi HTTP handlers over the cms service.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/nappsng/cms/pkg/cms"
)

// validate checks request DTO struct tags before they reach the service.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError translates service errors into HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var verr *cms.ValidationError
	var uerr *cms.UploadError
	var derr *cms.DeliveryError
	var ierr validator.ValidationErrors

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Field = verr.Field
	case errors.As(err, &ierr):
		status = http.StatusBadRequest
		if len(ierr) > 0 {
			resp.Field = ierr[0].Field()
		}
	case cms.IsNotFound(err):
		status = http.StatusNotFound
	case cms.IsConflict(err):
		status = http.StatusConflict
	case errors.As(err, &uerr), errors.As(err, &derr):
		status = http.StatusBadGateway
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// queryInt parses an integer query parameter, returning 0 when absent.
func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
