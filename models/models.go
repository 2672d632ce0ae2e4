package models

// FillLevel is the discrete fill-state classification reported by the
// perception pipeline, ordered from most full to empty. Comparisons always
// use Rank, never the string value.
type FillLevel string

const (
	FillLevelFull        FillLevel = "FULL"
	FillLevelMostlyFull  FillLevel = "MOSTLY_FULL"
	FillLevelHalf        FillLevel = "HALF"
	FillLevelNearlyEmpty FillLevel = "NEARLY_EMPTY"
	FillLevelEmpty       FillLevel = "EMPTY"
)

var fillLevelRanks = map[FillLevel]int{
	FillLevelFull:        0,
	FillLevelMostlyFull:  1,
	FillLevelHalf:        2,
	FillLevelNearlyEmpty: 3,
	FillLevelEmpty:       4,
}

// Rank returns the ordinal position of the fill level (FULL=0 .. EMPTY=4)
// and whether the value is a known level.
func (f FillLevel) Rank() (int, bool) {
	r, ok := fillLevelRanks[f]
	return r, ok
}

// DetectionConfidence is the coarse confidence bucket from the on-device
// perception pipeline.
type DetectionConfidence string

const (
	ConfidenceLow    DetectionConfidence = "LOW"
	ConfidenceMedium DetectionConfidence = "MEDIUM"
	ConfidenceHigh   DetectionConfidence = "HIGH"
)

// ConfirmationChannel identifies how the user confirmed or declined a prompt.
type ConfirmationChannel string

const (
	ChannelVoice   ConfirmationChannel = "VOICE"
	ChannelGesture ConfirmationChannel = "GESTURE"
	ChannelTap     ConfirmationChannel = "TAP"
)

// OrderStatus is the high-level lifecycle for a reorder request. Transitions
// only move forward: PENDING -> SUBMITTED/CONFIRMED, or FAILED.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusSubmitted OrderStatus = "SUBMITTED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// ProductVariant is a purchasable variation of a catalog product.
type ProductVariant struct {
	SKU          string  `json:"sku"`
	Label        string  `json:"label"`
	Size         string  `json:"size,omitempty"`
	UnitPriceUSD float64 `json:"unit_price_usd,omitempty"`
}

// Product maps a detected object class to purchasable goods. Immutable after
// catalog construction.
type Product struct {
	ID               string            `json:"id"`
	ObjectClass      string            `json:"object_class"`
	DefaultVariant   ProductVariant    `json:"default_variant"`
	Variants         []ProductVariant  `json:"variants,omitempty"`
	ReorderThreshold FillLevel         `json:"reorder_threshold"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// DetectionEvent is a single perception report from a device.
type DetectionEvent struct {
	EventID      string              `json:"event_id" binding:"required,min=8"`
	DeviceID     string              `json:"device_id" binding:"required,min=4"`
	ObjectClass  string              `json:"object_class" binding:"required,min=2"`
	FillLevel    FillLevel           `json:"fill_level" binding:"required,oneof=FULL MOSTLY_FULL HALF NEARLY_EMPTY EMPTY"`
	Confidence   DetectionConfidence `json:"confidence" binding:"required,oneof=LOW MEDIUM HIGH"`
	CapturedAtMs int64               `json:"captured_at_ms" binding:"required,gt=0"`
	FrameID      *int64              `json:"frame_id,omitempty"`
	LocationHint map[string]float64  `json:"location_hint,omitempty"`
}

// DetectionIngestResponse tells the client whether to surface a reorder prompt.
type DetectionIngestResponse struct {
	ShouldPrompt          bool   `json:"should_prompt"`
	Reason                string `json:"reason,omitempty"`
	NextPromptAllowedAtMs int64  `json:"next_prompt_allowed_at_ms,omitempty"`
	PendingIntentID       string `json:"pending_intent_id,omitempty"`
}

// PromptIntent is the server-side record tying a detection to a prompt
// conversation. ExpiresAtMs is always CreatedAtMs + TTL and is never extended.
type PromptIntent struct {
	IntentID    string `json:"intent_id"`
	EventID     string `json:"event_id"`
	ProductID   string `json:"product_id"`
	VariantSKU  string `json:"variant_sku"`
	CreatedAtMs int64  `json:"created_at_ms"`
	ExpiresAtMs int64  `json:"expires_at_ms"`
}

// PromptDecisionRequest carries the user's accept/decline decision for an
// open intent.
type PromptDecisionRequest struct {
	IntentID    string              `json:"intent_id" binding:"required,min=8"`
	Channel     ConfirmationChannel `json:"channel" binding:"required,oneof=VOICE GESTURE TAP"`
	Accepted    bool                `json:"accepted"`
	DecidedAtMs int64               `json:"decided_at_ms" binding:"required,gt=0"`
	RawPayload  map[string]string   `json:"raw_payload,omitempty"`
}

// PromptDecisionResponse reports the outcome of a decision.
type PromptDecisionResponse struct {
	OrderID string      `json:"order_id,omitempty"`
	Status  OrderStatus `json:"status"`
	Message string      `json:"message"`
}

// OrderRequest is what gets submitted to the commerce provider.
type OrderRequest struct {
	IntentID    string            `json:"intent_id"`
	ProductID   string            `json:"product_id"`
	VariantSKU  string            `json:"variant_sku"`
	Quantity    int               `json:"quantity"`
	Destination map[string]string `json:"destination"`
}

// OrderRecord is the normalized result of an order submission. Stored by
// order id independently of the owning intent's lifetime.
type OrderRecord struct {
	OrderID           string      `json:"order_id"`
	IntentID          string      `json:"intent_id"`
	ProductID         string      `json:"product_id"`
	VariantSKU        string      `json:"variant_sku"`
	Quantity          int         `json:"quantity"`
	Status            OrderStatus `json:"status"`
	CreatedAtMs       int64       `json:"created_at_ms"`
	UpdatedAtMs       int64       `json:"updated_at_ms"`
	Provider          string      `json:"provider"`
	ProviderReference string      `json:"provider_reference,omitempty"`
	Error             string      `json:"error,omitempty"`
}

// OrderStatusResponse wraps an OrderRecord for the status endpoint.
type OrderStatusResponse struct {
	Order OrderRecord `json:"order"`
}
