package handlers

import (
	"net/http"

	"storefront-client/internal/navigation"
	"storefront-client/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngagementHandler forwards hover and cart/wishlist interactions. None of its endpoints wait
// for the upstream services.
type EngagementHandler struct {
	logger     *zap.Logger
	controller *navigation.Controller
}

func NewEngagementHandler(controller *navigation.Controller, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		logger:     logger,
		controller: controller,
	}
}

// HoverEnter handles POST /api/v1/engagement/items/:pid/hover/enter
// @Summary      Pointer entered a product card
// @Description  Records the hover start for the product in the current view.
// @Tags         engagement
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        pid           path    string  true   "Product id" example(P1001)
// @Param        view          query   string  false  "View token of the page the card is on"
// @Success      202  {string}  string         "Recorded"
// @Failure      404  {object}  ErrorResponse  "Product is not in that view"
// @Router       /engagement/items/{pid}/hover/enter [post]
func (h *EngagementHandler) HoverEnter(c *gin.Context) {
	pid := c.Param("pid")
	if err := h.controller.HoverEnter(c.Request.Context(), middleware.GetSessionID(c), viewToken(c), pid); err != nil {
		failNavigation(c, h.controller, h.logger, pid, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// HoverLeave handles POST /api/v1/engagement/items/:pid/hover/leave
// @Summary      Pointer left a product card
// @Description  Submits a dwell report with the time since the matching hover enter. Nothing is reported when no enter was recorded.
// @Tags         engagement
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        pid           path    string  true   "Product id" example(P1001)
// @Param        view          query   string  false  "View token of the page the card is on"
// @Success      202  {string}  string         "Accepted"
// @Failure      404  {object}  ErrorResponse  "Product is not in that view"
// @Router       /engagement/items/{pid}/hover/leave [post]
func (h *EngagementHandler) HoverLeave(c *gin.Context) {
	pid := c.Param("pid")
	if err := h.controller.HoverLeave(c.Request.Context(), middleware.GetSessionID(c), viewToken(c), pid); err != nil {
		failNavigation(c, h.controller, h.logger, pid, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// AddToCart handles POST /api/v1/cart
// @Summary      Add the displayed product to the cart
// @Description  Submits a snapshot of the product on the detail view to the uid's cart without waiting for the cart service. Retrying with the same X-Request-ID replays the first answer.
// @Tags         engagement
// @Produce      json
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        X-Request-ID  header  string  false  "Request ID for idempotent retries"
// @Param        view          query   string  false  "View token of the detail page"
// @Success      202  {object}  AcceptedResponse  "Handed to the background reporter"
// @Success      303  {string}  string            "No uid or no displayed product: redirect to the error page"
// @Router       /cart [post]
func (h *EngagementHandler) AddToCart(c *gin.Context) {
	if err := h.controller.AddToCart(c.Request.Context(), middleware.GetSessionID(c), viewToken(c)); err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}
	c.JSON(http.StatusAccepted, AcceptedResponse{Status: "accepted"})
}

// AddToWishlist handles POST /api/v1/wishlist
// @Summary      Add the displayed product to the wishlist
// @Description  Same contract as the cart endpoint, against the uid's wishlist.
// @Tags         engagement
// @Produce      json
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        X-Request-ID  header  string  false  "Request ID for idempotent retries"
// @Param        view          query   string  false  "View token of the detail page"
// @Success      202  {object}  AcceptedResponse  "Handed to the background reporter"
// @Success      303  {string}  string            "No uid or no displayed product: redirect to the error page"
// @Router       /wishlist [post]
func (h *EngagementHandler) AddToWishlist(c *gin.Context) {
	if err := h.controller.AddToWishlist(c.Request.Context(), middleware.GetSessionID(c), viewToken(c)); err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}
	c.JSON(http.StatusAccepted, AcceptedResponse{Status: "accepted"})
}
