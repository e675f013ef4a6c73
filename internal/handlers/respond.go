package handlers

import (
	"context"
	"errors"
	"net/http"

	"storefront-client/internal/navigation"
	apperrors "storefront-client/pkg/errors"
	"storefront-client/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusClientClosedRequest is recorded when the browser went away before the fetch completed.
const statusClientClosedRequest = 499

// viewParam carries the view token on every action taken from a rendered page.
const viewParam = "view"

func viewToken(c *gin.Context) string {
	return c.Query(viewParam)
}

// failNavigation answers a failed view or interaction. Fatal errors route the browser to the
// error page; superseded fetches and unknown items become StandardError responses.
func failNavigation(c *gin.Context, controller *navigation.Controller, logger *zap.Logger, pid string, err error) {
	sessionID := middleware.GetSessionID(c)

	switch {
	case errors.Is(err, navigation.ErrSuperseded):
		_ = c.Error(apperrors.NewSuperseded(controller.Generation(c.Request.Context(), sessionID)))
	case errors.Is(err, navigation.ErrUnknownItem):
		_ = c.Error(apperrors.NewUnknownItem(pid))
	case errors.Is(err, navigation.ErrInvalidViewToken):
		_ = c.Error(apperrors.NewInvalidRequest("invalid view token", "reload the page to get a fresh view"))
	case errors.Is(err, context.Canceled):
		logger.Debug("Client went away before the view was ready",
			zap.String("session_id", sessionID),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		logger.Warn("Routing to error page",
			zap.String("session_id", sessionID),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.Redirect(http.StatusSeeOther, controller.Pages().ErrorURL())
	}
}
