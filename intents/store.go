// Package intents tracks reorder prompt intents and throttles duplicate
// prompts for each device/object pair.
package intents

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"restock-backend/models"
)

// Throttle reasons reported in DetectionIngestResponse.
const (
	ReasonCooldownActive = "cooldown_active"
	ReasonAboveThreshold = "above_threshold"
)

const (
	// DefaultPromptCooldown is the minimum gap between prompts for one
	// device/object pair.
	DefaultPromptCooldown = 5 * time.Minute
	// DefaultIntentTTL bounds how long an open intent stays decidable.
	DefaultIntentTTL = 15 * time.Minute
)

// State is the mutable aggregate tracked per device/object key. Exactly one
// live State exists per key at a time.
type State struct {
	Intent           models.PromptIntent
	Product          models.Product
	Variant          models.ProductVariant
	LastPromptedAtMs int64
	Accepted         *bool
	DecisionChannel  models.ConfirmationChannel
	OrderID          string
	OrderStatus      models.OrderStatus
	OrderError       string
}

// Store is the in-memory intent tracker. All mutations run under a single
// lock and perform no external I/O, so critical sections stay short.
type Store struct {
	mu       sync.Mutex
	cooldown time.Duration
	ttl      time.Duration
	states   map[string]*State  // device:object -> state
	byIntent map[string]string  // intent id -> state key
	orders   map[string]models.OrderRecord

	nowMs func() int64
}

// NewStore creates a Store with the given prompt cooldown and intent TTL.
// Non-positive durations fall back to the defaults.
func NewStore(cooldown, ttl time.Duration) *Store {
	if cooldown <= 0 {
		cooldown = DefaultPromptCooldown
	}
	if ttl <= 0 {
		ttl = DefaultIntentTTL
	}
	return &Store{
		cooldown: cooldown,
		ttl:      ttl,
		states:   make(map[string]*State),
		byIntent: make(map[string]string),
		orders:   make(map[string]models.OrderRecord),
		nowMs:    func() int64 { return time.Now().UnixMilli() },
	}
}

// RegisterDetection ingests a detection event and decides whether the client
// should surface a reorder prompt. The caller has already resolved the
// product and variant through the catalog; the store only manages throttling
// and intent state.
func (s *Store) RegisterDetection(event models.DetectionEvent, product models.Product, variant models.ProductVariant) models.DetectionIngestResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := deviceObjectKey(event.DeviceID, event.ObjectClass)
	now := s.nowMs()
	s.sweepExpiredLocked(now)

	if existing, ok := s.states[key]; ok {
		if now-existing.LastPromptedAtMs < s.cooldown.Milliseconds() {
			return models.DetectionIngestResponse{
				ShouldPrompt:          false,
				Reason:                ReasonCooldownActive,
				NextPromptAllowedAtMs: existing.LastPromptedAtMs + s.cooldown.Milliseconds(),
				PendingIntentID:       existing.Intent.IntentID,
			}
		}
	}

	if !thresholdMet(product, event.FillLevel) {
		return models.DetectionIngestResponse{
			ShouldPrompt: false,
			Reason:       ReasonAboveThreshold,
		}
	}

	intentID := newToken()
	state := &State{
		Intent: models.PromptIntent{
			IntentID:    intentID,
			EventID:     event.EventID,
			ProductID:   product.ID,
			VariantSKU:  variant.SKU,
			CreatedAtMs: now,
			ExpiresAtMs: now + s.ttl.Milliseconds(),
		},
		Product:          product,
		Variant:          variant,
		LastPromptedAtMs: now,
		OrderStatus:      models.OrderStatusPending,
	}
	s.replaceStateLocked(key, state)

	return models.DetectionIngestResponse{
		ShouldPrompt:          true,
		NextPromptAllowedAtMs: now + s.cooldown.Milliseconds(),
		PendingIntentID:       intentID,
	}
}

// GetIntent returns a copy of the state holding the given intent id, or nil
// if the intent is unknown or has expired. Expiry is checked against the
// current time, not the last sweep. Writes to the returned State never reach
// the store; Product and Variant are treated as immutable catalog data.
func (s *Store) GetIntent(intentID string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.findByIntentLocked(intentID)
	if !ok || state.Intent.ExpiresAtMs < s.nowMs() {
		return nil
	}
	copied := *state
	if state.Accepted != nil {
		accepted := *state.Accepted
		copied.Accepted = &accepted
	}
	return &copied
}

// RecordDecision applies the user's accept/decline decision to an open
// intent. Accepting reserves an order id and marks the order PENDING; the
// commerce submission itself is a separate call made by the caller, keeping
// the state transition free of external I/O.
//
// The second return value is true only when this call reserved a new order
// id, i.e. a first-time accept. Deciding an already-decided intent is
// idempotent: the prior outcome is returned with reserved=false and a second
// order id is never minted, so only the caller holding reserved=true may
// submit to the provider.
func (s *Store) RecordDecision(req models.PromptDecisionRequest) (models.PromptDecisionResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.findByIntentLocked(req.IntentID)
	if !ok || state.Intent.ExpiresAtMs < s.nowMs() {
		return models.PromptDecisionResponse{
			Status:  models.OrderStatusFailed,
			Message: "Intent expired or unknown.",
		}, false
	}

	if state.Accepted != nil {
		if !*state.Accepted {
			return models.PromptDecisionResponse{
				Status:  models.OrderStatusFailed,
				Message: "User declined reorder.",
			}, false
		}
		return models.PromptDecisionResponse{
			OrderID: state.OrderID,
			Status:  state.OrderStatus,
			Message: "Decision already recorded.",
		}, false
	}

	accepted := req.Accepted
	state.Accepted = &accepted
	state.DecisionChannel = req.Channel

	if !accepted {
		return models.PromptDecisionResponse{
			Status:  models.OrderStatusFailed,
			Message: "User declined reorder.",
		}, false
	}

	state.OrderID = newToken()
	state.OrderStatus = models.OrderStatusPending
	return models.PromptDecisionResponse{
		OrderID: state.OrderID,
		Status:  models.OrderStatusPending,
		Message: "Order request queued.",
	}, true
}

// MarkOrderSubmitted records the commerce provider's final result. The order
// record is always indexed by order id, even when the owning intent has
// already expired and been swept; order records have independent value to
// whoever submitted the decision.
func (s *Store) MarkOrderSubmitted(intentID string, order models.OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.findByIntentLocked(intentID); ok {
		state.OrderID = order.OrderID
		state.OrderStatus = order.Status
		state.OrderError = order.Error
	}
	s.orders[order.OrderID] = order
}

// GetOrder returns the stored order record for the given id, or nil.
func (s *Store) GetOrder(orderID string) *models.OrderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	return &order
}

// --- internals (callers must hold s.mu) ---

func (s *Store) sweepExpiredLocked(nowMs int64) {
	for key, state := range s.states {
		if state.Intent.ExpiresAtMs < nowMs {
			delete(s.byIntent, state.Intent.IntentID)
			delete(s.states, key)
		}
	}
}

func (s *Store) replaceStateLocked(key string, state *State) {
	if prior, ok := s.states[key]; ok {
		delete(s.byIntent, prior.Intent.IntentID)
	}
	s.states[key] = state
	s.byIntent[state.Intent.IntentID] = key
}

func (s *Store) findByIntentLocked(intentID string) (*State, bool) {
	key, ok := s.byIntent[intentID]
	if !ok {
		return nil, false
	}
	state, ok := s.states[key]
	return state, ok
}

func deviceObjectKey(deviceID, objectClass string) string {
	return deviceID + ":" + strings.ToLower(objectClass)
}

func thresholdMet(product models.Product, fill models.FillLevel) bool {
	fillRank, ok := fill.Rank()
	if !ok {
		return false
	}
	thresholdRank, ok := product.ReorderThreshold.Rank()
	if !ok {
		return false
	}
	return fillRank >= thresholdRank
}

// newToken mints a collision-resistant 12-hex identifier.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
