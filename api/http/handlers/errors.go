package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cybersoft/talentmatch/api/http/presenter"
	"github.com/cybersoft/talentmatch/pkg/apperr"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{apperr.ErrConnection, http.StatusBadRequest},
	{apperr.ErrNotFound, http.StatusNotFound},
	{apperr.ErrValidation, http.StatusUnprocessableEntity},
	{apperr.ErrConflict, http.StatusConflict},
	{apperr.ErrUnsupported, http.StatusUnsupportedMediaType},
	{apperr.ErrTimeout, http.StatusGatewayTimeout},
	{apperr.ErrAnalysis, http.StatusBadGateway},
	{apperr.ErrPersistence, http.StatusInternalServerError},
}

// statusOf maps an error kind to the HTTP status; unknown errors are 500.
func statusOf(err error) int {
	for _, s := range statusByKind {
		if errors.Is(err, s.kind) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// fail writes the {"detail": ...} envelope for err. A 500 carries the
// underlying error text after the detail; 5xx replies are logged.
func fail(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := statusOf(err)
	detail := "Internal server error: " + err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Detail != "" {
		detail = ae.Detail
		if status == http.StatusInternalServerError && ae.Cause != nil {
			detail += ": " + ae.Cause.Error()
		}
	}
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return presenter.Error(c, status, detail)
}
