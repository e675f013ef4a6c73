package handlers

import (
	"net/http"

	"storefront-client/internal/navigation"
	apperrors "storefront-client/pkg/errors"
	applogger "storefront-client/pkg/logger"
	"storefront-client/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewHandler serves the render outcomes of the listing, search and detail pages and the
// navigation transitions between them.
type ViewHandler struct {
	logger     *zap.Logger
	controller *navigation.Controller
}

func NewViewHandler(controller *navigation.Controller, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		logger:     logger,
		controller: controller,
	}
}

// GetListing handles GET /api/v1/views/listing
// @Summary      Listing view
// @Description  Fetches one catalog page and returns its display items and pagination controls.
//
// **Behavior:**
// - 16 items per page; "next" is enabled only when the page came back full
// - An empty first page is a valid "no results" view
// - An empty page past the first, a failed fetch or a missing uid redirect to the error page
// - A newer view request in the same session makes this one answer 409
// - The response carries a viewToken; actions taken from this page send it back as `view`
//
// **Examples:**
// - First page: `GET /api/v1/views/listing?uid=u-42`
// - Third page: `GET /api/v1/views/listing?page=3&uid=u-42`
//
// @Tags         views
// @Produce      json
// @Param        X-Session-ID  header    string  false  "View session (falls back to the sf_session cookie)"
// @Param        page          query     int     false  "Page number (default: 1, min: 1)" example(1)
// @Param        uid           query     string  true   "Opaque identity token" example(u-42)
// @Success      200           {object}  ListingResponse  "Rendered listing page"
// @Success      303           {string}  string           "Redirect to the error page"
// @Failure      409           {object}  ErrorResponse    "Superseded by a newer request"
// @Router       /views/listing [get]
func (h *ViewHandler) GetListing(c *gin.Context) {
	req, err := navigation.ParseRequest(c.Request.URL.Query())
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}

	result, err := h.controller.EnterListing(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}

	response := toListingResponse(result)
	applogger.Annotate(c, response.View, response.Generation)
	c.JSON(http.StatusOK, response)
}

// GetSearch handles GET /api/v1/views/search
// @Summary      Search results view
// @Description  Searches the catalog by category and text. An empty category means all categories and an empty query means no text filter.
//
// **Examples:**
// - Text in all categories: `GET /api/v1/views/search?category=&query=lamp&uid=u-42`
// - Whole category: `GET /api/v1/views/search?category=Home&query=&uid=u-42`
//
// @Tags         views
// @Produce      json
// @Param        X-Session-ID  header    string  false  "View session (falls back to the sf_session cookie)"
// @Param        category      query     string  false  "Category (empty = all)" example(Home)
// @Param        query         query     string  false  "Search text (empty = unfiltered)" example(lamp)
// @Param        uid           query     string  true   "Opaque identity token" example(u-42)
// @Success      200           {object}  SearchResponse  "Rendered search results"
// @Success      303           {string}  string          "Redirect to the error page"
// @Failure      409           {object}  ErrorResponse   "Superseded by a newer request"
// @Router       /views/search [get]
func (h *ViewHandler) GetSearch(c *gin.Context) {
	req, err := navigation.ParseRequest(c.Request.URL.Query())
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}

	result, err := h.controller.EnterSearch(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}

	response := toSearchResponse(result)
	applogger.Annotate(c, response.View, response.Generation)
	c.JSON(http.StatusOK, response)
}

// GetDetail handles GET /api/v1/views/detail
// @Summary      Product detail view
// @Description  Fetches one product. Any failure (missing product id, unknown product, fetch error) redirects to the error page; a partial product is never returned.
// @Tags         views
// @Produce      json
// @Param        X-Session-ID  header    string  false  "View session (falls back to the sf_session cookie)"
// @Param        product       query     string  true   "Product id" example(P1001)
// @Param        uid           query     string  true   "Opaque identity token" example(u-42)
// @Success      200           {object}  DetailResponse  "Product detail"
// @Success      303           {string}  string          "Redirect to the error page"
// @Failure      409           {object}  ErrorResponse   "Superseded by a newer request"
// @Router       /views/detail [get]
func (h *ViewHandler) GetDetail(c *gin.Context) {
	req, err := navigation.ParseRequest(c.Request.URL.Query())
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}

	result, err := h.controller.EnterDetail(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}

	response := toDetailResponse(result)
	applogger.Annotate(c, response.View, response.Generation)
	c.JSON(http.StatusOK, response)
}

// NextPage handles POST /api/v1/views/next
// @Summary      Next listing page
// @Description  Redirects to the page after the one the view token names. Answers 204 when "next" was disabled on that page.
// @Tags         navigation
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        view          query   string  false  "View token of the page the action was taken on (default: the session's latest view)"
// @Success      303  {string}  string         "Redirect to the next listing page"
// @Success      204  {string}  string         "Control disabled, nothing to do"
// @Failure      400  {object}  ErrorResponse  "Invalid view token"
// @Router       /views/next [post]
func (h *ViewHandler) NextPage(c *gin.Context) {
	target, ok, err := h.controller.Next(c.Request.Context(), middleware.GetSessionID(c), viewToken(c))
	h.paginate(c, target, ok, err)
}

// PreviousPage handles POST /api/v1/views/previous
// @Summary      Previous listing page
// @Description  Redirects to the page before the one the view token names. Answers 204 on the first page.
// @Tags         navigation
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        view          query   string  false  "View token of the page the action was taken on (default: the session's latest view)"
// @Success      303  {string}  string         "Redirect to the previous listing page"
// @Success      204  {string}  string         "Control disabled, nothing to do"
// @Failure      400  {object}  ErrorResponse  "Invalid view token"
// @Router       /views/previous [post]
func (h *ViewHandler) PreviousPage(c *gin.Context) {
	target, ok, err := h.controller.Previous(c.Request.Context(), middleware.GetSessionID(c), viewToken(c))
	h.paginate(c, target, ok, err)
}

func (h *ViewHandler) paginate(c *gin.Context, target string, ok bool, err error) {
	switch {
	case err != nil:
		failNavigation(c, h.controller, h.logger, "", err)
	case !ok:
		c.Status(http.StatusNoContent)
	default:
		c.Redirect(http.StatusSeeOther, target)
	}
}

// SubmitSearch handles POST /api/v1/views/search
// @Summary      Submit the search box
// @Description  Redirects to the search results. Category "All" with an empty query goes back to the first listing page.
// @Tags         navigation
// @Accept       json,x-www-form-urlencoded
// @Param        X-Session-ID  header  string         false  "View session (falls back to the sf_session cookie)"
// @Param        view          query   string         false  "View token of the page the search box is on"
// @Param        request       body    SearchRequest  true   "Search box"
// @Success      303  {string}  string         "Redirect to the search or listing page"
// @Failure      400  {object}  ErrorResponse  "Malformed body or invalid view token"
// @Router       /views/search [post]
func (h *ViewHandler) SubmitSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(apperrors.NewInvalidRequest("invalid search submission", err.Error()))
		return
	}

	target, err := h.controller.SubmitSearch(c.Request.Context(), middleware.GetSessionID(c), viewToken(c), req.Category, req.Query)
	if err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// OpenItem handles POST /api/v1/views/items/:pid/open
// @Summary      Open a product card
// @Description  Fires the click counter without waiting for it and redirects to the detail page. The redirect happens even if the click signal fails.
// @Tags         navigation
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        pid           path    string  true   "Product id" example(P1001)
// @Param        view          query   string  false  "View token of the page the card is on"
// @Success      303  {string}  string         "Redirect to the detail page"
// @Failure      400  {object}  ErrorResponse  "Invalid view token"
// @Failure      404  {object}  ErrorResponse  "Product is not in that view"
// @Router       /views/items/{pid}/open [post]
func (h *ViewHandler) OpenItem(c *gin.Context) {
	pid := c.Param("pid")

	target, err := h.controller.OpenProduct(c.Request.Context(), middleware.GetSessionID(c), viewToken(c), pid)
	if err != nil {
		failNavigation(c, h.controller, h.logger, pid, err)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

// LeaveView handles POST /api/v1/views/leave
// @Summary      Page closed
// @Description  Sent by the shell when a page is hidden for good. Drops the session's view state and cancels its fetch, unless the session has already rendered a newer view.
// @Tags         navigation
// @Param        X-Session-ID  header  string  false  "View session (falls back to the sf_session cookie)"
// @Param        view          query   string  true   "View token of the page being left"
// @Success      204  {string}  string         "Handled"
// @Failure      400  {object}  ErrorResponse  "Invalid view token"
// @Router       /views/leave [post]
func (h *ViewHandler) LeaveView(c *gin.Context) {
	if _, err := h.controller.Leave(c.Request.Context(), middleware.GetSessionID(c), viewToken(c)); err != nil {
		failNavigation(c, h.controller, h.logger, "", err)
		return
	}
	c.Status(http.StatusNoContent)
}
