// Package engine owns the live drafting session: the order context, the
// item under composition, the committed batch and the debounced lookup
// coordinators. All mutations are serialized through one mutex so the
// session behaves like a single-threaded form regardless of how many
// HTTP requests hit it concurrently.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ginzalimited/orderdesk/internal/directory"
	"github.com/ginzalimited/orderdesk/internal/draft"
	"github.com/ginzalimited/orderdesk/internal/events"
	"github.com/ginzalimited/orderdesk/internal/lookup"
	"github.com/ginzalimited/orderdesk/internal/metrics"
	"github.com/ginzalimited/orderdesk/internal/order"
	"github.com/ginzalimited/orderdesk/internal/session"
	"github.com/ginzalimited/orderdesk/internal/sink"
)

var (
	ErrMandatoryDataMissing = errors.New("customer, branch, sales person and at least one item are required")
	ErrSubmissionInFlight   = errors.New("a submission is already in progress")
	ErrItemNotFound         = errors.New("item not found in batch")
)

// Historian records submitted orders for offline audit.
type Historian interface {
	Append(o order.Order) error
	List(limit int) ([]order.Order, error)
}

// Deps wires the engine's collaborators. History, Session and Publisher
// are optional; a nil value disables the concern.
type Deps struct {
	Drafts    draft.Store
	Sink      sink.Sink
	History   Historian
	Customers directory.CustomerDirectory
	Products  directory.ProductDirectory
	Roster    directory.RosterDirectory
	Session   session.Lookup
	Publisher events.Publisher

	LookupDebounce time.Duration
}

type Engine struct {
	deps Deps

	mu              sync.Mutex
	context         order.Context
	current         order.ItemDraft
	batch           *order.Batch
	itemSearch      string
	customerSearch  string
	customerMatches []directory.Customer
	productMatches  []directory.Product
	salesPersons    []string

	customerLookup *lookup.Coordinator[directory.Customer]
	productLookup  *lookup.Coordinator[directory.Product]

	// saveCh carries the latest snapshot to the persister loop; nil
	// means clear. Buffered at one and coalesced so only the newest
	// pending state is ever written.
	saveCh chan *draft.Snapshot

	inFlight atomic.Bool
}

func New(deps Deps) *Engine {
	e := &Engine{
		deps:    deps,
		current: order.NewItemDraft(),
		batch:   order.NewBatch(),
		saveCh:  make(chan *draft.Snapshot, 1),
	}
	e.context.OrderID = order.NewOrderID()
	go e.saveLoop()

	e.customerLookup = lookup.New("customer", deps.LookupDebounce,
		func(ctx context.Context, scope, query string) ([]directory.Customer, error) {
			return deps.Customers.Search(ctx, scope, query)
		},
		e.applyCustomerMatches)
	e.productLookup = lookup.New("product", deps.LookupDebounce,
		func(ctx context.Context, scope, query string) ([]directory.Product, error) {
			return deps.Products.Search(ctx, scope, query)
		},
		e.applyProductMatches)

	return e
}

// Start restores the persisted draft if one exists, pre-fills the
// operator's branch and name into an otherwise empty context and warms
// the salesperson roster. Draft restore failures degrade to a fresh
// session.
func (e *Engine) Start(ctx context.Context) error {
	snap, err := e.deps.Drafts.Load()
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}

	e.mu.Lock()
	if snap != nil {
		e.context = snap.Context
		e.current = snap.CurrentItem
		e.batch.Restore(snap.Items)
		e.itemSearch = snap.ItemSearch
		e.customerSearch = snap.Context.CustomerName
		if e.context.OrderID == "" {
			e.context.OrderID = order.NewOrderID()
		}
		log.Info().Str("order_id", e.context.OrderID).Int("items", e.batch.Len()).Msg("engine: draft restored")
	}

	if e.deps.Session != nil && e.context.Branch == "" && e.context.SalesPerson == "" {
		id, err := e.deps.Session.Current(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("engine: session lookup failed")
		} else if id != nil {
			e.context.Branch = id.Branch
			e.context.SalesPerson = id.FullName()
		}
	}
	branch := e.context.Branch
	e.mu.Unlock()

	go e.refreshRoster(branch)
	return nil
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	Context           order.Context        `json:"context"`
	CurrentItem       order.ItemDraft      `json:"current_item"`
	Items             []order.Item         `json:"items"`
	Subtotal          float64              `json:"subtotal"`
	EditingID         uuid.UUID            `json:"editing_id"`
	ItemSearch        string               `json:"item_search"`
	CustomerSearch    string               `json:"customer_search"`
	CustomerMatches   []directory.Customer `json:"customer_matches"`
	ProductMatches    []directory.Product  `json:"product_matches"`
	SalesPersons      []string             `json:"sales_persons"`
	CustomerSearching bool                 `json:"customer_searching"`
	ProductSearching  bool                 `json:"product_searching"`
	Submitting        bool                 `json:"submitting"`
	LastSaved         time.Time            `json:"last_saved"`
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Context:           e.context,
		CurrentItem:       e.current,
		Items:             e.batch.Items(),
		Subtotal:          e.batch.Subtotal(),
		EditingID:         e.batch.EditingID(),
		ItemSearch:        e.itemSearch,
		CustomerSearch:    e.customerSearch,
		CustomerMatches:   append([]directory.Customer(nil), e.customerMatches...),
		ProductMatches:    append([]directory.Product(nil), e.productMatches...),
		SalesPersons:      append([]string(nil), e.salesPersons...),
		CustomerSearching: e.customerLookup.Searching(),
		ProductSearching:  e.productLookup.Searching(),
		Submitting:        e.inFlight.Load(),
		LastSaved:         e.deps.Drafts.LastSaved(),
	}
}

// ContextPatch updates order-level fields. Nil pointers leave a field
// untouched.
type ContextPatch struct {
	Branch          *string `json:"branch"`
	SalesPerson     *string `json:"sales_person"`
	CustomerPONo    *string `json:"customer_po_no"`
	Transporter     *string `json:"transporter_name"`
	AccountStatus   *string `json:"account_status"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerContact *string `json:"customer_contact"`
	BillingAddress  *string `json:"billing_address"`
	DeliveryAddress *string `json:"delivery_address"`
}

// UpdateContext applies the patch. Changing the branch invalidates
// everything scoped to it: the selected salesperson, the customer
// resolution and any customer suggestions.
func (e *Engine) UpdateContext(patch ContextPatch) {
	e.mu.Lock()

	branchChanged := false
	if patch.Branch != nil && *patch.Branch != e.context.Branch {
		branchChanged = true
		e.context.Branch = *patch.Branch
		e.context.SalesPerson = ""
		e.context.CustomerResolved = false
		e.customerMatches = nil
		e.salesPersons = nil
		go e.refreshRoster(*patch.Branch)
	}
	if patch.SalesPerson != nil {
		e.context.SalesPerson = *patch.SalesPerson
	}
	if patch.CustomerPONo != nil {
		e.context.CustomerPONo = *patch.CustomerPONo
	}
	if patch.Transporter != nil {
		e.context.Transporter = *patch.Transporter
	}
	if patch.AccountStatus != nil {
		e.context.AccountStatus = *patch.AccountStatus
	}
	if patch.CustomerEmail != nil {
		e.context.CustomerEmail = *patch.CustomerEmail
	}
	if patch.CustomerContact != nil {
		e.context.CustomerContact = *patch.CustomerContact
	}
	if patch.BillingAddress != nil {
		e.context.BillingAddress = *patch.BillingAddress
	}
	if patch.DeliveryAddress != nil {
		e.context.DeliveryAddress = *patch.DeliveryAddress
	}

	e.persistLocked()
	e.mu.Unlock()

	// Coordinator calls happen outside the session lock; their apply
	// callbacks re-enter it.
	if branchChanged {
		e.customerLookup.SetQuery("", "")
	}
}

// SetCustomerSearch records a keystroke in the customer name field. The
// field doubles as the customer name on the order until a suggestion is
// selected. Without a branch there is nothing to search.
func (e *Engine) SetCustomerSearch(query string) {
	e.mu.Lock()
	e.customerSearch = query
	e.context.CustomerName = query
	e.context.CustomerResolved = false
	branch := e.context.Branch
	if branch == "" || query == "" {
		e.customerMatches = nil
	}
	e.persistLocked()
	e.mu.Unlock()

	if branch == "" || query == "" {
		e.customerLookup.SetQuery("", "")
	} else {
		e.customerLookup.SetQuery(branch, query)
	}
}

// SelectCustomer copies the chosen record into the context and stops
// any outstanding search from overwriting the suggestion list.
func (e *Engine) SelectCustomer(c directory.Customer) {
	e.customerLookup.Lock()

	e.mu.Lock()
	e.context.CustomerName = c.Name
	e.context.CustomerEmail = c.Email
	e.context.CustomerContact = c.MobNo
	e.context.BillingAddress = c.Address
	e.context.DeliveryAddress = c.Address
	e.context.AccountStatus = c.AccountStatus
	e.context.CustomerResolved = true
	e.customerSearch = c.Name
	e.customerMatches = nil
	e.persistLocked()
	e.mu.Unlock()
}

// SetItemSearch records a keystroke in the catalog search field.
// Without a category, or in manual-entry mode, the catalog is not
// consulted.
func (e *Engine) SetItemSearch(query string) {
	e.mu.Lock()
	e.itemSearch = query
	category := e.current.Category
	gated := category == "" || e.current.ManualItem || query == ""
	if gated {
		e.productMatches = nil
	}
	e.persistLocked()
	e.mu.Unlock()

	if gated {
		e.productLookup.SetQuery("", "")
	} else {
		e.productLookup.SetQuery(category, query)
	}
}

// SelectProduct fills the item draft from the chosen catalog entry.
func (e *Engine) SelectProduct(p directory.Product) {
	e.productLookup.Lock()

	e.mu.Lock()
	e.current.ItemName = p.Name
	if p.Width != "" {
		e.current.Width = p.Width
	}
	if p.UOM != "" {
		e.current.UOM = p.UOM
	}
	e.itemSearch = p.Name
	e.productMatches = nil
	e.persistLocked()
	e.mu.Unlock()
}

// UpdateItem replaces the item draft. Changing the category drops the
// pending catalog search and its suggestions since they belong to the
// old category.
func (e *Engine) UpdateItem(d order.ItemDraft) {
	e.mu.Lock()
	categoryChanged := d.Category != e.current.Category
	if categoryChanged {
		e.itemSearch = ""
		e.productMatches = nil
	}
	e.current = d
	e.persistLocked()
	e.mu.Unlock()

	if categoryChanged {
		e.productLookup.SetQuery("", "")
	}
}

// CommitItem validates the draft and moves it into the batch. On
// success the draft resets for the next entry; on failure nothing
// changes.
func (e *Engine) CommitItem() (order.Item, error) {
	e.mu.Lock()
	it, err := e.current.Resolve(e.itemSearch)
	if err != nil {
		e.mu.Unlock()
		return order.Item{}, err
	}
	it.Transporter = e.context.Transporter

	it, updated := e.batch.Commit(it)
	e.current = e.current.Reset()
	e.itemSearch = ""
	e.productMatches = nil
	e.persistLocked()
	size := e.batch.Len()
	e.mu.Unlock()

	e.productLookup.SetQuery("", "")
	log.Info().Str("item", it.ItemName).Bool("updated", updated).Int("batch", size).Msg("engine: item committed")
	return it, nil
}

// EditItem loads a batch item back into the draft for modification.
func (e *Engine) EditItem(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, ok := e.batch.BeginEdit(id)
	if !ok {
		return ErrItemNotFound
	}
	e.current = it.Draft()
	e.itemSearch = it.ItemName
	e.productMatches = nil
	e.productLookup.Lock()
	e.persistLocked()
	return nil
}

// RemoveItem deletes one batch item.
func (e *Engine) RemoveItem(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.batch.Remove(id) {
		return ErrItemNotFound
	}
	e.persistLocked()
	return nil
}

// ClearBatch drops all committed items.
func (e *Engine) ClearBatch() {
	e.mu.Lock()
	e.batch.Clear()
	e.persistLocked()
	e.mu.Unlock()
}

// Reset abandons the whole draft and starts a fresh session with a new
// order identifier.
func (e *Engine) Reset() {
	e.mu.Lock()
	previous := e.context.OrderID
	e.context = order.Context{OrderID: order.NextOrderID(previous)}
	e.current = order.NewItemDraft()
	e.batch.Clear()
	e.itemSearch = ""
	e.customerSearch = ""
	e.customerMatches = nil
	e.productMatches = nil
	e.salesPersons = nil
	e.clearLocked()
	e.mu.Unlock()

	e.customerLookup.SetQuery("", "")
	e.productLookup.SetQuery("", "")
}

// SalesPersons returns the roster for the current branch.
func (e *Engine) SalesPersons() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.salesPersons...)
}

// History lists previously submitted orders, most recent first.
func (e *Engine) History(limit int) ([]order.Order, error) {
	if e.deps.History == nil {
		return nil, nil
	}
	return e.deps.History.List(limit)
}

func (e *Engine) applyCustomerMatches(query string, results []directory.Customer) {
	e.mu.Lock()
	if query == e.customerSearch || query == "" {
		e.customerMatches = results
	}
	e.mu.Unlock()
}

func (e *Engine) applyProductMatches(query string, results []directory.Product) {
	e.mu.Lock()
	if query == e.itemSearch || query == "" {
		e.productMatches = results
	}
	e.mu.Unlock()
}

func (e *Engine) refreshRoster(branch string) {
	if branch == "" || e.deps.Roster == nil {
		return
	}
	names, err := e.deps.Roster.SalesPersons(context.Background(), branch)
	if err != nil {
		log.Warn().Err(err).Str("branch", branch).Msg("engine: roster refresh failed")
		return
	}
	e.mu.Lock()
	if e.context.Branch == branch {
		e.salesPersons = names
	}
	e.mu.Unlock()
}

// persistLocked snapshots the session and hands it to the persister
// loop. Called with the session lock held so enqueue order matches
// mutation order.
func (e *Engine) persistLocked() {
	e.enqueueLocked(&draft.Snapshot{
		Context:     e.context,
		CurrentItem: e.current,
		Items:       e.batch.Items(),
		ItemSearch:  e.itemSearch,
	})
}

// clearLocked queues a draft clear behind any pending save.
func (e *Engine) clearLocked() {
	e.enqueueLocked(nil)
}

func (e *Engine) enqueueLocked(snap *draft.Snapshot) {
	for {
		select {
		case e.saveCh <- snap:
			return
		default:
			// Drop the not-yet-written snapshot; it is stale now.
			select {
			case <-e.saveCh:
			default:
			}
		}
	}
}

// saveLoop is the single writer to the draft store. One consumer keeps
// writes in mutation order; a failed save is logged and counted but
// never interrupts drafting.
func (e *Engine) saveLoop() {
	for snap := range e.saveCh {
		if snap == nil {
			if err := e.deps.Drafts.Clear(); err != nil {
				log.Warn().Err(err).Msg("engine: failed to clear draft")
			}
			continue
		}
		metrics.DraftSaves.Inc()
		if err := e.deps.Drafts.Save(snap); err != nil {
			metrics.DraftSaveFailures.Inc()
			log.Error().Err(err).Msg("engine: draft save failed")
		}
	}
}

// Submit freezes the current session into an order and hands it to the
// sink. At most one submission is in flight at a time; a second call
// while one is pending fails fast without touching the first. The sink
// runs outside the session lock so drafting state stays readable, but
// the in-flight flag keeps the session effectively frozen.
func (e *Engine) Submit(ctx context.Context) (order.Order, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return order.Order{}, ErrSubmissionInFlight
	}
	defer e.inFlight.Store(false)
	metrics.SubmissionsAttempted.Inc()

	e.mu.Lock()
	if e.context.CustomerName == "" || e.context.Branch == "" || e.context.SalesPerson == "" || e.batch.Len() == 0 {
		e.mu.Unlock()
		metrics.SubmissionsFailed.Inc()
		return order.Order{}, ErrMandatoryDataMissing
	}
	o := e.buildOrderLocked()
	e.mu.Unlock()

	if err := e.deps.Sink.Dispatch(ctx, o); err != nil {
		metrics.SubmissionsFailed.Inc()
		return order.Order{}, fmt.Errorf("failed to submit order %s: %w", o.ID, err)
	}
	metrics.SubmissionsSucceeded.Inc()
	log.Info().Str("order_id", o.ID).Int("items", len(o.Items)).Float64("subtotal", subtotal(o)).Msg("engine: order submitted")

	if e.deps.History != nil {
		if err := e.deps.History.Append(o); err != nil {
			log.Warn().Err(err).Str("order_id", o.ID).Msg("engine: failed to record history")
		}
	}
	e.publishSubmitted(ctx, o)

	e.mu.Lock()
	e.batch.Clear()
	e.context = order.Context{
		OrderID:     order.NextOrderID(o.ID),
		Branch:      e.context.Branch,
		SalesPerson: e.context.SalesPerson,
	}
	e.current = order.NewItemDraft()
	e.itemSearch = ""
	e.customerSearch = ""
	e.customerMatches = nil
	e.productMatches = nil
	// The new empty session is intentionally not re-saved; an
	// interruption here recovers to a blank draft, never to the
	// already-submitted order.
	e.clearLocked()
	e.mu.Unlock()

	return o, nil
}

func (e *Engine) buildOrderLocked() order.Order {
	items := e.batch.Items()
	// The order-level transporter wins over whatever was captured at
	// item commit time.
	for i := range items {
		items[i].Transporter = e.context.Transporter
	}
	return order.Order{
		ID:              e.context.OrderID,
		OrderDate:       time.Now().Format("02/01/2006"),
		Branch:          e.context.Branch,
		SalesPerson:     e.context.SalesPerson,
		CustomerPONo:    e.context.CustomerPONo,
		CustomerName:    e.context.CustomerName,
		CustomerEmail:   e.context.CustomerEmail,
		CustomerContact: e.context.CustomerContact,
		BillingAddress:  e.context.BillingAddress,
		DeliveryAddress: e.context.DeliveryAddress,
		AccountStatus:   e.context.AccountStatus,
		Transporter:     e.context.Transporter,
		Items:           items,
		Timestamp:       time.Now().UnixMilli(),
	}
}

func (e *Engine) publishSubmitted(ctx context.Context, o order.Order) {
	if e.deps.Publisher == nil {
		return
	}
	payload, err := json.Marshal(events.OrderSubmittedEvent{
		EventType:   "order.submitted",
		OrderID:     o.ID,
		Branch:      o.Branch,
		SalesPerson: o.SalesPerson,
		ItemCount:   len(o.Items),
		Subtotal:    subtotal(o),
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("engine: failed to encode event")
		return
	}
	if err := e.deps.Publisher.Publish(ctx, events.OrderSubmittedTopic, payload); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("engine: failed to publish event")
	}
}

func subtotal(o order.Order) float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Total
	}
	return sum
}
