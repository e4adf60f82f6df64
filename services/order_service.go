package services

import (
	"context"
	"errors"
	"fmt"
	"paiges_bagels_server/database"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
	"slices"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	slotService    *SlotService
	catalogService *CatalogService
	pricingService *PricingService
	emailService   *EmailService
	checkout       CheckoutClient
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	slotService *SlotService,
	catalogService *CatalogService,
	pricingService *PricingService,
	emailService *EmailService,
	checkout CheckoutClient,
) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		slotService:    slotService,
		catalogService: catalogService,
		pricingService: pricingService,
		emailService:   emailService,
		checkout:       checkout,
	}
}

// CreateOrderFromRequest validates, prices, and atomically reserves slot
// capacity for a new order. The slot row is locked for the duration of the
// capacity check and insert, so two concurrent orders can never both take
// the last bagels.
func (os *OrderService) CreateOrderFromRequest(ctx context.Context, req *structs.OrderRequest) (*structs.OrderResponse, error) {
	slotID, err := uuid.Parse(req.TimeSlotId)
	if err != nil {
		return nil, fmt.Errorf("invalid time slot id: %s", req.TimeSlotId)
	}

	slot, err := os.slotService.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !IsOpenForOrders(slot, time.Now()) {
		return nil, lib.ErrSlotClosed
	}

	totalBagels, err := tallyBagels(req.Bagels, os.cfg.Order)
	if err != nil {
		return nil, err
	}
	for idStr, qty := range req.AddOns {
		if qty <= 0 {
			return nil, lib.ErrInvalidQuantity
		}
		if _, parseErr := uuid.Parse(idStr); parseErr != nil {
			return nil, fmt.Errorf("invalid add-on type id: %s", idStr)
		}
	}

	items, err := os.buildOrderItems(ctx, req.Bagels)
	if err != nil {
		return nil, err
	}
	addOns, addOnTotal, err := os.buildOrderAddOns(ctx, req.AddOns)
	if err != nil {
		return nil, err
	}

	bagelTotal, err := os.pricingService.PriceOrderTotal(ctx, totalBagels, PricingTypeForSlot(slot))
	if err != nil {
		return nil, err
	}

	orderID := uuid.New()
	order := &tables.Order{
		Id:               orderID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		TimeSlotId:       slotID,
		TotalBagels:      totalBagels,
		TotalPriceCents:  bagelTotal + addOnTotal,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: lib.GeneratePaymentReference(orderID),
		Status:           tables.OrderStatusPending,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	for _, item := range items {
		item.OrderId = orderID
	}
	for _, addOn := range addOns {
		addOn.OrderId = orderID
	}

	err = os.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if lockErr := database.LockSlot(ctx, tx, slotID); lockErr != nil {
			if errors.Is(lockErr, database.ErrSlotNotFound) {
				return lib.ErrNotFound
			}
			return lib.MapPgError(lockErr)
		}

		remaining, remErr := database.SlotRemaining(ctx, tx, slotID)
		if remErr != nil {
			return lib.MapPgError(remErr)
		}
		if remaining < totalBagels {
			return lib.ErrCapacityExceeded
		}

		if _, insErr := tx.NewInsert().Model(order).Exec(ctx); insErr != nil {
			return lib.MapPgError(insErr)
		}
		if len(items) > 0 {
			if _, insErr := tx.NewInsert().Model(&items).Exec(ctx); insErr != nil {
				return lib.MapPgError(insErr)
			}
		}
		if len(addOns) > 0 {
			if _, insErr := tx.NewInsert().Model(&addOns).Exec(ctx); insErr != nil {
				return lib.MapPgError(insErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	order.AddOns = addOns

	response := &structs.OrderResponse{
		Order:    order,
		TimeSlot: slot,
	}

	if req.PaymentMethod == tables.PaymentMethodCard {
		session, sessErr := os.checkout.CreateSession(ctx, &CheckoutParams{
			ReferenceId:   orderID,
			Kind:          CheckoutKindBagel,
			AmountCents:   order.TotalPriceCents,
			Description:   fmt.Sprintf("%d bagels, pickup %s %s", totalBagels, slot.Date.Format("Jan 2"), slot.TimeOfDay),
			CustomerEmail: req.Email,
			SuccessURL:    os.cfg.Server.FrontendURL + "/order/confirmed",
			CancelURL:     os.cfg.Server.FrontendURL + "/order/cancelled",
		})
		if sessErr != nil {
			// The reserved capacity must not leak when checkout can't start.
			if delErr := os.DeleteOrder(ctx, orderID); delErr != nil {
				os.logger.Error("Failed to release order after checkout failure",
					gecho.Field("error", delErr),
					gecho.Field("order_id", orderID))
			}
			return nil, sessErr
		}

		order.PaymentSessionId = session.SessionId
		response.CheckoutURL = session.URL

		if updErr := os.attachPaymentSession(ctx, orderID, session.SessionId); updErr != nil {
			os.logger.Error("Failed to store payment session id",
				gecho.Field("error", updErr),
				gecho.Field("order_id", orderID),
				gecho.Field("session_id", session.SessionId))
		}
	} else {
		response.VenmoHandle = os.cfg.Payment.VenmoHandle
	}

	go func() {
		if emailErr := os.emailService.SendOrderReceivedEmail(order, slot); emailErr != nil {
			os.logger.Error("Failed to send order received email",
				gecho.Field("error", emailErr),
				gecho.Field("order_id", orderID),
				gecho.Field("email", order.Email))
		} else {
			os.logger.Info("Order received email sent", gecho.Field("order_id", orderID))
		}
	}()

	os.logger.Info("Order created",
		gecho.Field("order_id", orderID),
		gecho.Field("slot_id", slotID),
		gecho.Field("total_bagels", totalBagels),
		gecho.Field("total_price_cents", order.TotalPriceCents),
		gecho.Field("payment_method", order.PaymentMethod))

	return response, nil
}

// tallyBagels validates the requested bagel counts and returns their total.
// Per-flavor quantities must be positive, ids must parse, and the total must
// land inside the configured per-order range.
func tallyBagels(bagels map[string]int, cfg *structs.OrderConfig) (int, error) {
	total := 0
	for idStr, qty := range bagels {
		if qty <= 0 {
			return 0, lib.ErrInvalidQuantity
		}
		if _, err := uuid.Parse(idStr); err != nil {
			return 0, fmt.Errorf("invalid bagel type id: %s", idStr)
		}
		total += qty
	}
	if total < cfg.MinBagelsPerOrder || total > cfg.MaxBagelsPerOrder {
		return 0, lib.ErrInvalidQuantity
	}
	return total, nil
}

// buildOrderItems resolves requested flavors into snapshot line items.
func (os *OrderService) buildOrderItems(ctx context.Context, bagels map[string]int) ([]*tables.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(bagels))
	for idStr := range bagels {
		ids = append(ids, uuid.MustParse(idStr))
	}

	types, err := os.catalogService.GetBagelTypesByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	typeMap := make(map[uuid.UUID]*tables.BagelType, len(types))
	for i := range types {
		typeMap[types[i].Id] = &types[i]
	}

	items := make([]*tables.OrderItem, 0, len(bagels))
	for idStr, qty := range bagels {
		id := uuid.MustParse(idStr)
		bt, exists := typeMap[id]
		if !exists || !bt.IsActive {
			return nil, lib.ErrItemUnavailable
		}
		items = append(items, &tables.OrderItem{
			Id:            uuid.New(),
			BagelTypeId:   id,
			Quantity:      qty,
			BagelTypeName: bt.Name,
		})
	}

	return items, nil
}

// buildOrderAddOns resolves requested add-ons into priced snapshot lines and
// returns their combined price.
func (os *OrderService) buildOrderAddOns(ctx context.Context, addOns map[string]int) ([]*tables.OrderAddOn, int64, error) {
	if len(addOns) == 0 {
		return nil, 0, nil
	}

	ids := make([]uuid.UUID, 0, len(addOns))
	for idStr := range addOns {
		ids = append(ids, uuid.MustParse(idStr))
	}

	types, err := os.catalogService.GetAddOnTypesByIds(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	typeMap := make(map[uuid.UUID]*tables.AddOnType, len(types))
	for i := range types {
		typeMap[types[i].Id] = &types[i]
	}

	var total int64
	lines := make([]*tables.OrderAddOn, 0, len(addOns))
	for idStr, qty := range addOns {
		id := uuid.MustParse(idStr)
		at, exists := typeMap[id]
		if !exists || !at.IsActive {
			return nil, 0, lib.ErrItemUnavailable
		}
		lines = append(lines, &tables.OrderAddOn{
			Id:             uuid.New(),
			AddOnTypeId:    id,
			Quantity:       qty,
			AddOnTypeName:  at.Name,
			UnitPriceCents: at.PriceCents,
		})
		total += at.PriceCents * int64(qty)
	}

	return lines, total, nil
}

func (os *OrderService) attachPaymentSession(ctx context.Context, orderID uuid.UUID, sessionID string) error {
	err := database.WithRetry(ctx, func() error {
		_, err := os.db.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("payment_session_id = ?", sessionID).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderID).
			Exec(ctx)
		return err
	})
	return lib.MapPgError(err)
}

// GetOrder retrieves an order with its items and add-ons.
func (os *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*tables.Order, error) {
	order := new(tables.Order)
	err := database.WithRetry(ctx, func() error {
		return os.db.NewSelect().
			Model(order).
			Relation("Items").
			Relation("AddOns").
			Where("o.id = ?", orderID).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return order, nil
}

// ListOrders returns orders for the admin console, newest first.
func (os *OrderService) ListOrders(ctx context.Context, opts *structs.OrderListOptions) ([]*tables.Order, int, error) {
	var orders []*tables.Order
	var count int

	err := database.WithRetry(ctx, func() error {
		orders = nil

		query := os.db.NewSelect().
			Model(&orders).
			Relation("Items").
			Relation("AddOns")

		if opts.TimeSlotId != nil {
			query = query.Where("o.time_slot_id = ?", *opts.TimeSlotId)
		}
		if opts.Status != nil {
			query = query.Where("o.status = ?", *opts.Status)
		}
		if !opts.IncludeFake {
			query = query.Where("o.is_fake = ?", false)
		}

		var err error
		count, err = query.Count(ctx)
		if err != nil {
			return err
		}

		query = query.Order("o.created_at DESC")
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}

		return query.Scan(ctx)
	})
	if err != nil {
		return nil, 0, lib.MapPgError(err)
	}

	return orders, count, nil
}

// FindByPaymentNote resolves a Venmo payment note to the order its reference
// token points at. The note is free text typed by the customer, so the token
// is fished out of it; the id fragments can collide across orders, so when
// several match the pending one wins, then the newest.
func (os *OrderService) FindByPaymentNote(ctx context.Context, note string) (*tables.Order, error) {
	fragment, ok := lib.ParsePaymentReference(note)
	if !ok {
		return nil, lib.ErrNoPaymentReference
	}

	var orders []*tables.Order
	err := database.WithRetry(ctx, func() error {
		orders = nil
		return os.db.NewSelect().
			Model(&orders).
			Relation("Items").
			Relation("AddOns").
			Where("o.payment_reference = ?", lib.FormatPaymentReference(fragment)).
			Order("o.created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	var match *tables.Order
	for _, order := range orders {
		if !lib.MatchesOrder(fragment, order.Id) {
			continue
		}
		if order.Status == tables.OrderStatusPending {
			return order, nil
		}
		if match == nil {
			match = order
		}
	}
	if match == nil {
		return nil, lib.ErrNotFound
	}
	return match, nil
}

// ConfirmOrder marks a pending order confirmed. Used by the admin console
// after matching a Venmo payment to the order's reference. Confirming an
// already-confirmed order is a no-op.
func (os *OrderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) error {
	return os.transitionOrder(ctx, orderID, tables.OrderStatusPending, tables.OrderStatusConfirmed, true)
}

// ConfirmFromPaymentSession confirms the pending order tied to a completed
// card checkout session. A replayed event finds the order already confirmed
// and does nothing.
func (os *OrderService) ConfirmFromPaymentSession(ctx context.Context, sessionID string) error {
	order, err := os.findBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	if order.Status != tables.OrderStatusPending {
		os.logger.Info("Payment session already reconciled",
			gecho.Field("order_id", order.Id),
			gecho.Field("status", order.Status))
		return nil
	}

	return os.transitionOrder(ctx, order.Id, tables.OrderStatusPending, tables.OrderStatusConfirmed, true)
}

func (os *OrderService) findBySession(ctx context.Context, sessionID string) (*tables.Order, error) {
	if sessionID == "" {
		return nil, lib.ErrNotFound
	}

	order := new(tables.Order)
	err := database.WithRetry(ctx, func() error {
		return os.db.NewSelect().
			Model(order).
			Where("payment_session_id = ?", sessionID).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return order, nil
}

// MarkOrderReady moves a confirmed order to ready and tells the customer.
func (os *OrderService) MarkOrderReady(ctx context.Context, orderID uuid.UUID) error {
	return os.transitionOrder(ctx, orderID, tables.OrderStatusConfirmed, tables.OrderStatusReady, true)
}

// transitionOrder performs a conditional status update. The WHERE on the
// current status makes repeated calls idempotent: only the call that
// actually flips the row sends the customer email.
func (os *OrderService) transitionOrder(ctx context.Context, orderID uuid.UUID, from, to tables.OrderStatus, notify bool) error {
	var transitioned bool
	err := database.WithRetry(ctx, func() error {
		result, err := os.db.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("status = ?", to).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderID).
			Where("status = ?", from).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		transitioned = rows > 0
		return nil
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	if !transitioned {
		// Nothing flipped: either the order is gone, is already at (or past)
		// the target, or sits in a state this transition doesn't serve.
		order, getErr := os.GetOrder(ctx, orderID)
		if getErr != nil {
			return getErr
		}
		if order.Status == to {
			return nil
		}
		if !isValidStatusTransition(order.Status, to) {
			return fmt.Errorf("invalid status transition from %s to %s", order.Status, to)
		}
		return nil
	}

	os.logger.Info("Order status updated",
		gecho.Field("order_id", orderID),
		gecho.Field("from", from),
		gecho.Field("to", to))

	if notify {
		go os.notifyTransition(orderID, to)
	}

	return nil
}

func (os *OrderService) notifyTransition(orderID uuid.UUID, to tables.OrderStatus) {
	ctx := context.Background()

	order, err := os.GetOrder(ctx, orderID)
	if err != nil {
		os.logger.Error("Failed to load order for status email",
			gecho.Field("error", err),
			gecho.Field("order_id", orderID))
		return
	}
	slot, err := os.slotService.GetSlot(ctx, order.TimeSlotId)
	if err != nil {
		os.logger.Error("Failed to load slot for status email",
			gecho.Field("error", err),
			gecho.Field("order_id", orderID))
		return
	}

	var emailErr error
	switch to {
	case tables.OrderStatusConfirmed:
		// The received email at order time carried the details and payment
		// instructions; this one only acknowledges the payment.
		emailErr = os.emailService.SendOrderConfirmationEmail(order, slot)
	case tables.OrderStatusReady:
		emailErr = os.emailService.SendOrderReadyEmail(order, slot)
	default:
		return
	}

	if emailErr != nil {
		os.logger.Error("Failed to send status email",
			gecho.Field("error", emailErr),
			gecho.Field("order_id", orderID),
			gecho.Field("status", to))
	}
}

// MarkSlotOrdersReady bulk-transitions every confirmed order on a slot to
// ready. Returns the ids that actually transitioned; each gets an email.
func (os *OrderService) MarkSlotOrdersReady(ctx context.Context, slotID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := database.WithRetry(ctx, func() error {
		ids = nil
		return os.db.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("status = ?", tables.OrderStatusReady).
			Set("updated_at = ?", time.Now()).
			Where("time_slot_id = ?", slotID).
			Where("status = ?", tables.OrderStatusConfirmed).
			Returning("id").
			Scan(ctx, &ids)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	os.logger.Info("Slot orders marked ready",
		gecho.Field("slot_id", slotID),
		gecho.Field("count", len(ids)))

	for _, id := range ids {
		go os.notifyTransition(id, tables.OrderStatusReady)
	}

	return ids, nil
}

// DeleteOrder hard-deletes an order and its lines. This is the cancellation
// mechanism for bagel orders; the freed capacity is visible to the next
// availability query immediately because remaining is always derived.
func (os *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return os.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.OrderItem)(nil)).
			Where("order_id = ?", orderID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := tx.NewDelete().
			Model((*tables.OrderAddOn)(nil)).
			Where("order_id = ?", orderID).
			Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		result, err := tx.NewDelete().
			Model((*tables.Order)(nil)).
			Where("id = ?", orderID).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return lib.ErrNotFound
		}

		os.logger.Info("Order deleted", gecho.Field("order_id", orderID))
		return nil
	})
}

// SetOrderFake flips the promo/test flag. The stored price is untouched;
// fake orders simply stop counting toward capacity and revenue.
func (os *OrderService) SetOrderFake(ctx context.Context, orderID uuid.UUID, fake bool) error {
	err := database.WithRetry(ctx, func() error {
		result, err := os.db.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("is_fake = ?", fake).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderID).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	os.logger.Info("Order fake flag updated",
		gecho.Field("order_id", orderID),
		gecho.Field("is_fake", fake))

	return nil
}

// RevenueSummary totals real demand across all orders, or one slot when
// slotID is non-nil. Fake orders never count.
func (os *OrderService) RevenueSummary(ctx context.Context, slotID *uuid.UUID) (*structs.RevenueSummary, error) {
	summary := new(structs.RevenueSummary)
	err := database.WithRetry(ctx, func() error {
		query := os.db.NewSelect().
			Model((*tables.Order)(nil)).
			ColumnExpr("COUNT(*) AS order_count").
			ColumnExpr("COALESCE(SUM(total_bagels), 0) AS total_bagels").
			ColumnExpr("COALESCE(SUM(total_price_cents), 0) AS total_revenue_cents").
			Where("is_fake = ?", false)
		if slotID != nil {
			query = query.Where("time_slot_id = ?", *slotID)
		}
		return query.Scan(ctx, &summary.OrderCount, &summary.TotalBagels, &summary.TotalRevenueCents)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return summary, nil
}

// isValidStatusTransition is the order lifecycle: pending -> confirmed ->
// ready, strictly forward.
func isValidStatusTransition(current, next tables.OrderStatus) bool {
	transitions := map[tables.OrderStatus][]tables.OrderStatus{
		tables.OrderStatusPending:   {tables.OrderStatusConfirmed},
		tables.OrderStatusConfirmed: {tables.OrderStatusReady},
		tables.OrderStatusReady:     {},
	}

	allowed, exists := transitions[current]
	if !exists {
		return false
	}
	return slices.Contains(allowed, next)
}
