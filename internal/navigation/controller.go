package navigation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-client/internal/clock"
	"storefront-client/internal/models"
	"storefront-client/internal/render"

	"go.uber.org/zap"
)

// Catalog is the read side the controller fetches views from.
type Catalog interface {
	ListProducts(ctx context.Context, page int) ([]models.Product, error)
	SearchProducts(ctx context.Context, category, query string) ([]models.Product, error)
	GetProduct(ctx context.Context, pid string) (*models.Product, error)
}

// Engagement receives the fire-and-forget signals. Its methods must not block.
type Engagement interface {
	IncrementClicks(pid string) bool
	AddToCart(product models.Product, uid string) bool
	AddToWishlist(product models.Product, uid string) bool
}

// HoverTracker measures hover dwell per session and product.
type HoverTracker interface {
	Enter(ctx context.Context, sessionID, pid string)
	Leave(ctx context.Context, sessionID, pid string) (time.Duration, bool)
}

// Options configures a Controller. Signer issues the view tokens and must be set.
type Options struct {
	Pages      Pages
	RequireUID bool
	Signer     *ViewSigner
}

// Controller drives the listing, search and detail views of every session.
type Controller struct {
	catalog    Catalog
	engagement Engagement
	hover      HoverTracker
	sessions   *Registry
	pages      Pages
	requireUID bool
	signer     *ViewSigner
	clock      clock.Clock
	logger     *zap.Logger
}

func NewController(
	catalog Catalog,
	engagement Engagement,
	hover HoverTracker,
	sessions *Registry,
	opts Options,
	clk clock.Clock,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		catalog:    catalog,
		engagement: engagement,
		hover:      hover,
		sessions:   sessions,
		pages:      opts.Pages,
		requireUID: opts.RequireUID,
		signer:     opts.Signer,
		clock:      clk,
		logger:     logger,
	}
}

// Each result carries the signed token of its render. Actions taken from that page echo it.
type ListingResult struct {
	Generation uint64
	Token      string
	Page       int
	UID        string
	Outcome    render.Outcome
}

type SearchResult struct {
	Generation    uint64
	Token         string
	Category      string
	CategoryLabel string
	Query         string
	Status        string
	UID           string
	Outcome       render.Outcome
}

type DetailResult struct {
	Generation uint64
	Token      string
	UID        string
	View       *render.DetailView
}

// IsFatal reports whether err must route the browser to the error page.
// Superseded fetches, unknown items, bad view tokens and cancelled requests are answered
// without a redirect.
func IsFatal(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrSuperseded) &&
		!errors.Is(err, ErrUnknownItem) &&
		!errors.Is(err, ErrInvalidViewToken) &&
		!errors.Is(err, context.Canceled)
}

// Pages returns the shell pages the controller navigates between.
func (c *Controller) Pages() Pages {
	return c.pages
}

// Generation is the session's most recently issued fetch generation.
func (c *Controller) Generation(ctx context.Context, sessionID string) uint64 {
	return c.sessions.Get(ctx, sessionID).Generation()
}

// EnterListing fetches and renders one listing page.
func (c *Controller) EnterListing(ctx context.Context, sessionID string, req Request) (*ListingResult, error) {
	if err := c.checkUID(req); err != nil {
		return nil, err
	}

	st := c.sessions.Get(ctx, sessionID)
	fetchCtx, generation := st.begin(ctx, c.clock.Now())
	defer st.end(generation)

	products, err := c.catalog.ListProducts(fetchCtx, req.Page)
	if err != nil {
		return nil, c.fetchFailed(ctx, st, generation, fmt.Sprintf("list page %d", req.Page), err)
	}

	outcome, err := render.Render(products, req.Page, c.interactions(sessionID, req.UID))
	if err != nil {
		if st.Generation() != generation {
			return nil, ErrSuperseded
		}
		return nil, fmt.Errorf("list page %d: %w", req.Page, err)
	}

	var claims *ViewClaims
	applied := st.commit(generation, func(s *State) {
		s.enter(ViewListing, req)
		s.outcome = outcome
		s.lastCount = len(products)
		claims = s.claimsLocked()
	})
	if !applied {
		return nil, ErrSuperseded
	}
	c.sessions.Save(ctx, st)

	token, err := c.sign(claims)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Listing rendered",
		zap.String("session_id", sessionID),
		zap.Int("page", req.Page),
		zap.Int("items", len(outcome.Items)),
		zap.Uint64("generation", generation),
	)

	return &ListingResult{
		Generation: generation,
		Token:      token,
		Page:       req.Page,
		UID:        req.UID,
		Outcome:    outcome,
	}, nil
}

// EnterSearch fetches and renders the results for category and query. Search is not paginated.
func (c *Controller) EnterSearch(ctx context.Context, sessionID string, req Request) (*SearchResult, error) {
	if err := c.checkUID(req); err != nil {
		return nil, err
	}
	req.Page = 1

	st := c.sessions.Get(ctx, sessionID)
	fetchCtx, generation := st.begin(ctx, c.clock.Now())
	defer st.end(generation)

	products, err := c.catalog.SearchProducts(fetchCtx, req.Category, req.Query)
	if err != nil {
		return nil, c.fetchFailed(ctx, st, generation, "search", err)
	}

	outcome, err := render.Render(products, req.Page, c.interactions(sessionID, req.UID))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var claims *ViewClaims
	applied := st.commit(generation, func(s *State) {
		s.enter(ViewSearch, req)
		s.outcome = outcome
		s.lastCount = len(products)
		claims = s.claimsLocked()
	})
	if !applied {
		return nil, ErrSuperseded
	}
	c.sessions.Save(ctx, st)

	token, err := c.sign(claims)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Generation:    generation,
		Token:         token,
		Category:      req.Category,
		CategoryLabel: render.CategoryLabel(req.Category),
		Query:         req.Query,
		Status:        render.SearchStatus(req.Category, req.Query, len(products)),
		UID:           req.UID,
		Outcome:       outcome,
	}, nil
}

// EnterDetail fetches one product. Any failure is fatal; no partial view is produced.
func (c *Controller) EnterDetail(ctx context.Context, sessionID string, req Request) (*DetailResult, error) {
	if req.ProductID == "" {
		return nil, ErrMissingProduct
	}
	if err := c.checkUID(req); err != nil {
		return nil, err
	}

	st := c.sessions.Get(ctx, sessionID)
	fetchCtx, generation := st.begin(ctx, c.clock.Now())
	defer st.end(generation)

	product, err := c.catalog.GetProduct(fetchCtx, req.ProductID)
	if err != nil {
		return nil, c.fetchFailed(ctx, st, generation, "get product "+req.ProductID, err)
	}

	view, err := render.Detail(product)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", req.ProductID, err)
	}

	var claims *ViewClaims
	applied := st.commit(generation, func(s *State) {
		s.enter(ViewDetail, req)
		s.product = product
		claims = s.claimsLocked()
	})
	if !applied {
		return nil, ErrSuperseded
	}
	c.sessions.Save(ctx, st)

	token, err := c.sign(claims)
	if err != nil {
		return nil, err
	}

	return &DetailResult{
		Generation: generation,
		Token:      token,
		UID:        req.UID,
		View:       view,
	}, nil
}

// Next returns the listing URL one page past the token's render. ok is false when the
// control is disabled there.
func (c *Controller) Next(ctx context.Context, sessionID, token string) (target string, ok bool, err error) {
	_, claims, err := c.view(ctx, sessionID, token)
	if err != nil {
		return "", false, err
	}
	if claims.View != ViewListing || claims.Count != models.PageSize {
		return "", false, nil
	}
	return c.pages.ListingURL(claims.Page+1, claims.UID), true, nil
}

// Previous returns the listing URL one page back. Going below page 1 is a no-op.
func (c *Controller) Previous(ctx context.Context, sessionID, token string) (target string, ok bool, err error) {
	_, claims, err := c.view(ctx, sessionID, token)
	if err != nil {
		return "", false, err
	}
	if claims.View != ViewListing || claims.Page <= 1 {
		return "", false, nil
	}
	return c.pages.ListingURL(claims.Page-1, claims.UID), true, nil
}

// SubmitSearch maps the search box to a URL. The "All" label means every category, and
// "All" with an empty query goes back to the first listing page.
func (c *Controller) SubmitSearch(ctx context.Context, sessionID, token, categoryLabel, query string) (string, error) {
	_, claims, err := c.view(ctx, sessionID, token)
	if err != nil {
		return "", err
	}
	category := render.CategoryFromLabel(categoryLabel)

	if category == "" && query == "" {
		return c.pages.ListingURL(1, claims.UID), nil
	}
	return c.pages.SearchURL(category, query, claims.UID), nil
}

// OpenProduct activates a displayed item and returns the detail URL. The click signal is
// fire-and-forget and never prevents the navigation.
func (c *Controller) OpenProduct(ctx context.Context, sessionID, token, pid string) (string, error) {
	bindings, err := c.bindings(ctx, sessionID, token, pid)
	if err != nil {
		return "", err
	}
	return bindings.Activate(ctx), nil
}

func (c *Controller) HoverEnter(ctx context.Context, sessionID, token, pid string) error {
	bindings, err := c.bindings(ctx, sessionID, token, pid)
	if err != nil {
		return err
	}
	bindings.HoverEnter(ctx)
	return nil
}

func (c *Controller) HoverLeave(ctx context.Context, sessionID, token, pid string) error {
	bindings, err := c.bindings(ctx, sessionID, token, pid)
	if err != nil {
		return err
	}
	bindings.HoverLeave(ctx)
	return nil
}

// AddToCart submits the displayed product to the session's cart. It does not wait for the cart service.
func (c *Controller) AddToCart(ctx context.Context, sessionID, token string) error {
	product, uid, err := c.selected(ctx, sessionID, token)
	if err != nil {
		return err
	}
	c.engagement.AddToCart(*product, uid)
	return nil
}

// AddToWishlist submits the displayed product to the session's wishlist.
func (c *Controller) AddToWishlist(ctx context.Context, sessionID, token string) error {
	product, uid, err := c.selected(ctx, sessionID, token)
	if err != nil {
		return err
	}
	c.engagement.AddToWishlist(*product, uid)
	return nil
}

// Leave discards the session's state when the page showing the token's render is closed.
// released is false when the session has already moved on to another render.
func (c *Controller) Leave(ctx context.Context, sessionID, token string) (released bool, err error) {
	claims, err := c.signer.Parse(token, sessionID)
	if err != nil {
		return false, err
	}
	released = c.sessions.Release(ctx, sessionID, claims.ID, claims.Generation)
	c.logger.Debug("View left",
		zap.String("session_id", sessionID),
		zap.String("view", string(claims.View)),
		zap.Uint64("generation", claims.Generation),
		zap.Bool("released", released),
	)
	return released, nil
}

// view resolves the render an action applies to: the one named by token, or the session's
// latest render when the caller sent none.
func (c *Controller) view(ctx context.Context, sessionID, token string) (*State, *ViewClaims, error) {
	st := c.sessions.Get(ctx, sessionID)
	if token == "" {
		return st, st.current(), nil
	}
	claims, err := c.signer.Parse(token, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return st, claims, nil
}

// bindings returns the interaction handlers of pid in the token's render. The live bindings
// serve while that render is still the latest; an older render's item is bound again.
func (c *Controller) bindings(ctx context.Context, sessionID, token, pid string) (render.Bindings, error) {
	st, claims, err := c.view(ctx, sessionID, token)
	if err != nil {
		return render.Bindings{}, err
	}
	if !claims.Shows(pid) {
		return render.Bindings{}, ErrUnknownItem
	}
	if item, ok := st.bound(claims.ID, pid); ok {
		return item.Bindings, nil
	}
	return render.Bind(pid, c.interactions(sessionID, claims.UID)), nil
}

// selected returns the product on the token's detail view. Only the latest render holds the
// fetched product; otherwise it is fetched again.
func (c *Controller) selected(ctx context.Context, sessionID, token string) (*models.Product, string, error) {
	st, claims, err := c.view(ctx, sessionID, token)
	if err != nil {
		return nil, "", err
	}
	if claims.UID == "" {
		return nil, "", ErrMissingUID
	}
	if claims.ProductID == "" {
		return nil, "", ErrMissingProduct
	}
	if product := st.displayed(claims.ID); product != nil {
		return product, claims.UID, nil
	}

	product, err := c.catalog.GetProduct(ctx, claims.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("get product %s: %w", claims.ProductID, err)
	}
	st.remember(claims.ID, product)
	return product, claims.UID, nil
}

func (c *Controller) sign(claims *ViewClaims) (string, error) {
	token, err := c.signer.Sign(claims, c.clock.Now())
	if err != nil {
		return "", fmt.Errorf("sign view token: %w", err)
	}
	return token, nil
}

func (c *Controller) checkUID(req Request) error {
	if c.requireUID && req.UID == "" {
		return ErrMissingUID
	}
	return nil
}

// fetchFailed classifies a failed fetch. A newer generation wins over any error.
func (c *Controller) fetchFailed(ctx context.Context, st *State, generation uint64, op string, err error) error {
	if st.Generation() != generation {
		c.logger.Debug("Discarding superseded fetch",
			zap.String("operation", op),
			zap.Uint64("generation", generation),
		)
		return ErrSuperseded
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	c.logger.Warn("Catalog fetch failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Controller) interactions(sessionID, uid string) render.Interactions {
	return &sessionInteractions{controller: c, sessionID: sessionID, uid: uid}
}

// sessionInteractions binds rendered items to one session.
type sessionInteractions struct {
	controller *Controller
	sessionID  string
	uid        string
}

func (i *sessionInteractions) Activate(ctx context.Context, pid string) string {
	i.controller.engagement.IncrementClicks(pid)
	return i.controller.pages.DetailURL(pid, i.uid)
}

func (i *sessionInteractions) HoverEnter(ctx context.Context, pid string) {
	i.controller.hover.Enter(ctx, i.sessionID, pid)
}

func (i *sessionInteractions) HoverLeave(ctx context.Context, pid string) {
	i.controller.hover.Leave(ctx, i.sessionID, pid)
}
