package navigation

import (
	"context"
	"sync"
	"time"

	"storefront-client/internal/models"
	"storefront-client/internal/render"
	"storefront-client/internal/session"

	"github.com/google/uuid"
)

// View identifies which shell page a session is on.
type View string

const (
	ViewNone    View = ""
	ViewListing View = "listing"
	ViewSearch  View = "search"
	ViewDetail  View = "detail"
)

// State is the explicit UI state of one browser session. It is reset on every view entry.
//
// Every fetch is tagged with a generation taken at issuance. Starting a fetch cancels the
// previous in-flight one, and a response is applied only while its generation is current.
type State struct {
	mu sync.Mutex

	id        string
	view      View
	page      int
	category  string
	query     string
	uid       string
	productID string
	lastCount int

	product *models.Product
	outcome render.Outcome

	// renderID names the committed render; rendered is the generation that produced it.
	renderID string
	rendered uint64

	generation uint64
	cancel     context.CancelFunc
	touchedAt  time.Time
}

func newState(id string, now time.Time) *State {
	return &State{id: id, page: 1, touchedAt: now}
}

func stateFromSnapshot(snapshot *session.Snapshot, now time.Time) *State {
	st := newState(snapshot.ID, now)
	st.view = View(snapshot.View)
	st.page = snapshot.Page
	if st.page < 1 {
		st.page = 1
	}
	st.category = snapshot.Category
	st.query = snapshot.Query
	st.uid = snapshot.UID
	st.productID = snapshot.ProductID
	st.lastCount = snapshot.LastCount
	st.renderID = snapshot.RenderID
	st.generation = snapshot.Generation
	st.rendered = snapshot.Generation
	return st
}

// begin starts a new fetch generation derived from parent and cancels the superseded fetch.
func (s *State) begin(parent context.Context, now time.Time) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.generation++
	s.cancel = cancel
	s.touchedAt = now
	return ctx, s.generation
}

// abort cancels the in-flight fetch and invalidates its generation.
func (s *State) abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
}

// end releases the fetch context of generation. It is a no-op for superseded generations.
func (s *State) end(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == generation && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// commit applies fn under the state lock only while generation is current.
func (s *State) commit(generation uint64, fn func(*State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return false
	}
	fn(s)
	return true
}

// enter resets the view-scoped fields under a new render id. Items and product of the
// previous view are dropped. It must run inside commit.
func (s *State) enter(view View, req Request) {
	s.renderID = uuid.New().String()
	s.rendered = s.generation
	s.view = view
	s.page = req.Page
	s.category = req.Category
	s.query = req.Query
	s.uid = req.UID
	s.productID = req.ProductID
	s.lastCount = 0
	s.product = nil
	s.outcome = render.Outcome{}
}

func (s *State) snapshot(now time.Time) *session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &session.Snapshot{
		ID:         s.id,
		View:       string(s.view),
		Page:       s.page,
		Category:   s.category,
		Query:      s.query,
		UID:        s.uid,
		ProductID:  s.productID,
		LastCount:  s.lastCount,
		RenderID:   s.renderID,
		Generation: s.rendered,
		UpdatedAt:  now,
	}
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.touchedAt = now
	s.mu.Unlock()
}

func (s *State) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Generation is the generation of the most recently issued fetch.
func (s *State) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// current returns the claims of the committed render.
func (s *State) current() *ViewClaims {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claimsLocked()
}

func (s *State) claimsLocked() *ViewClaims {
	claims := &ViewClaims{
		View:       s.view,
		Page:       s.page,
		Count:      s.lastCount,
		Category:   s.category,
		Query:      s.query,
		UID:        s.uid,
		ProductID:  s.productID,
		Generation: s.rendered,
	}
	claims.ID = s.renderID
	claims.Subject = s.id
	for _, item := range s.outcome.Items {
		claims.Items = append(claims.Items, item.Product.PID)
	}
	return claims
}

// bound returns the rendered item for pid while renderID is still the committed render.
func (s *State) bound(renderID, pid string) (render.DisplayItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderID == "" || s.renderID != renderID {
		return render.DisplayItem{}, false
	}
	return s.outcome.Find(pid)
}

// displayed returns the detail product while renderID is still the committed render.
func (s *State) displayed(renderID string) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderID == "" || s.renderID != renderID {
		return nil
	}
	return s.product
}

// remember keeps a refetched detail product while renderID is still the committed render.
func (s *State) remember(renderID string, product *models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderID == renderID && s.productID == product.PID {
		s.product = product
	}
}

// showing reports whether renderID is the committed render and no fetch started since.
func (s *State) showing(renderID string, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderID == renderID && s.generation == generation
}

// paging returns what the pagination transitions need.
func (s *State) paging() (view View, page, lastCount int, uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.page, s.lastCount, s.uid
}
