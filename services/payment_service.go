package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CheckoutKind tags a provider session with the order family it pays for,
// so webhook routing never has to guess.
type CheckoutKind string

const (
	CheckoutKindBagel CheckoutKind = "bagel"
	CheckoutKindMerch CheckoutKind = "merch"
)

// CheckoutParams describes a hosted checkout session to create.
type CheckoutParams struct {
	ReferenceId   uuid.UUID    `json:"reference_id"`
	Kind          CheckoutKind `json:"kind"`
	AmountCents   int64        `json:"amount_cents"`
	Description   string       `json:"description"`
	CustomerEmail string       `json:"customer_email"`
	SuccessURL    string       `json:"success_url"`
	CancelURL     string       `json:"cancel_url"`
}

// CheckoutSession is the provider's handle on a created session.
type CheckoutSession struct {
	SessionId string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutClient creates hosted card-checkout sessions. Order and merch
// services depend on this interface so tests can swap the provider out.
type CheckoutClient interface {
	CreateSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)
}

var (
	checkoutHTTPClient *http.Client
	checkoutClientOnce sync.Once
)

// httpCheckoutClient talks to the hosted payment provider over its JSON API.
type httpCheckoutClient struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *http.Client
}

func NewCheckoutClient(logger *gecho.Logger, cfg *structs.Config) CheckoutClient {
	checkoutClientOnce.Do(func() {
		checkoutHTTPClient = &http.Client{Timeout: cfg.Payment.Timeout}
	})
	return &httpCheckoutClient{
		logger: logger,
		cfg:    cfg,
		client: checkoutHTTPClient,
	}
}

func (c *httpCheckoutClient) CreateSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	url := c.cfg.Payment.ProviderURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Payment.ApiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Checkout session request failed", gecho.Field("error", err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Checkout session rejected",
			gecho.Field("status", resp.StatusCode),
			gecho.Field("body", string(respBody)))
		return nil, fmt.Errorf("checkout session creation failed with status %d", resp.StatusCode)
	}

	session := new(CheckoutSession)
	if err := json.NewDecoder(resp.Body).Decode(session); err != nil {
		return nil, err
	}
	if session.SessionId == "" || session.URL == "" {
		return nil, fmt.Errorf("checkout session response missing session_id or url")
	}

	return session, nil
}

// WebhookEvent is a signed provider notification. Type is one of
// checkout.completed / checkout.expired; other types are acknowledged
// without effect.
type WebhookEvent struct {
	Id   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		SessionId   string       `json:"session_id"`
		Kind        CheckoutKind `json:"kind"`
		AmountCents int64        `json:"amount_cents"`
	} `json:"data"`
}

const (
	webhookEventCompleted = "checkout.completed"
	webhookEventExpired   = "checkout.expired"
)

// PaymentService reconciles provider webhook events against bagel and merch
// orders. It is the only component allowed to flip payment-derived state.
type PaymentService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	cacheService *CacheService
	orderService *OrderService
	merchService *MerchService
}

func NewPaymentService(
	logger *gecho.Logger,
	cfg *structs.Config,
	cacheService *CacheService,
	orderService *OrderService,
	merchService *MerchService,
) *PaymentService {
	return &PaymentService{
		logger:       logger,
		cfg:          cfg,
		cacheService: cacheService,
		orderService: orderService,
		merchService: merchService,
	}
}

// VerifyAndParse checks the webhook signature and decodes the event. The
// signature covers the raw payload; parse only after verification passes.
func (ps *PaymentService) VerifyAndParse(payload []byte, sigHeader string) (*WebhookEvent, error) {
	err := lib.VerifyWebhookSignature(sigHeader, payload, ps.cfg.Payment.WebhookSecret,
		ps.cfg.Payment.SignatureTolerance, time.Now())
	if err != nil {
		return nil, err
	}

	event := new(WebhookEvent)
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, lib.ErrPaymentVerificationFailed
	}
	if event.Id == "" || event.Type == "" {
		return nil, lib.ErrPaymentVerificationFailed
	}

	return event, nil
}

// HandleWebhook verifies, dedupes, and applies one provider event.
//
// Events referencing unknown sessions are acknowledged as no-ops: the
// provider retries on non-2xx, and an order the admin deleted mid-flight
// must not wedge the webhook queue.
func (ps *PaymentService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := ps.VerifyAndParse(payload, sigHeader)
	if err != nil {
		ps.logger.Warn("Webhook rejected", gecho.Field("error", err))
		return err
	}

	first, err := ps.cacheService.MarkWebhookEventSeen(event.Id)
	if err != nil {
		// Dedup store down: process anyway. Downstream updates are
		// conditional on status, so a replay is still harmless.
		ps.logger.Warn("Webhook dedup unavailable, processing without it",
			gecho.Field("error", err),
			gecho.Field("event_id", event.Id))
	} else if !first {
		ps.logger.Info("Webhook event already processed",
			gecho.Field("event_id", event.Id),
			gecho.Field("type", event.Type))
		return nil
	}

	switch event.Type {
	case webhookEventCompleted:
		err = ps.handleCompleted(ctx, event)
	case webhookEventExpired:
		err = ps.handleExpired(ctx, event)
	default:
		ps.logger.Info("Ignoring webhook event type",
			gecho.Field("event_id", event.Id),
			gecho.Field("type", event.Type))
		return nil
	}

	if errors.Is(err, lib.ErrNotFound) {
		ps.logger.Warn("Webhook references unknown session, acknowledging",
			gecho.Field("event_id", event.Id),
			gecho.Field("session_id", event.Data.SessionId),
			gecho.Field("kind", event.Data.Kind))
		return nil
	}

	return err
}

func (ps *PaymentService) handleCompleted(ctx context.Context, event *WebhookEvent) error {
	switch event.Data.Kind {
	case CheckoutKindBagel:
		return ps.orderService.ConfirmFromPaymentSession(ctx, event.Data.SessionId)
	case CheckoutKindMerch:
		return ps.merchService.MarkPaidBySession(ctx, event.Data.SessionId)
	default:
		ps.logger.Warn("Completed event with unknown kind, acknowledging",
			gecho.Field("event_id", event.Id),
			gecho.Field("kind", event.Data.Kind))
		return nil
	}
}

func (ps *PaymentService) handleExpired(ctx context.Context, event *WebhookEvent) error {
	switch event.Data.Kind {
	case CheckoutKindBagel:
		// The order stays pending: the customer may still pay by Venmo,
		// and disposition of stale pending orders is the admin's call.
		ps.logger.Info("Card checkout expired for bagel order, leaving it pending",
			gecho.Field("event_id", event.Id),
			gecho.Field("session_id", event.Data.SessionId))
		return nil
	case CheckoutKindMerch:
		return ps.merchService.HandleExpiredSession(ctx, event.Data.SessionId)
	default:
		ps.logger.Warn("Expired event with unknown kind, acknowledging",
			gecho.Field("event_id", event.Id),
			gecho.Field("kind", event.Data.Kind))
		return nil
	}
}
