package services

import (
	"context"
	"fmt"
	"paiges_bagels_server/database"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type MerchService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	emailService *EmailService
	checkout     CheckoutClient
}

func NewMerchService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	emailService *EmailService,
	checkout CheckoutClient,
) *MerchService {
	return &MerchService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		emailService: emailService,
		checkout:     checkout,
	}
}

// ListActiveItems returns the purchasable merch catalog.
func (ms *MerchService) ListActiveItems(ctx context.Context) ([]tables.MerchItem, error) {
	var items []tables.MerchItem
	err := database.WithRetry(ctx, func() error {
		items = nil
		return ms.db.NewSelect().
			Model(&items).
			Where("is_active = ?", true).
			Order("name ASC", "size ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return items, nil
}

// ListAllItems returns every merch item for the admin console.
func (ms *MerchService) ListAllItems(ctx context.Context) ([]tables.MerchItem, error) {
	var items []tables.MerchItem
	err := database.WithRetry(ctx, func() error {
		items = nil
		return ms.db.NewSelect().
			Model(&items).
			Order("name ASC", "size ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return items, nil
}

// CreateItem inserts a merch item. Nil stock means unlimited.
func (ms *MerchService) CreateItem(ctx context.Context, item *tables.MerchItem) (*tables.MerchItem, error) {
	if item.Id == uuid.Nil {
		item.Id = uuid.New()
	}
	if item.PriceCents < 0 || (item.Stock != nil && *item.Stock < 0) {
		return nil, lib.ErrInvalidQuantity
	}
	err := database.WithRetry(ctx, func() error {
		_, err := ms.db.NewInsert().Model(item).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ms.logger.Info("Merch item created",
		gecho.Field("item_id", item.Id),
		gecho.Field("name", item.Name))

	return item, nil
}

// UpdateItem updates a merch item, stock included. Setting stock to nil
// makes the item unlimited again.
func (ms *MerchService) UpdateItem(ctx context.Context, item *tables.MerchItem) error {
	if item.PriceCents < 0 || (item.Stock != nil && *item.Stock < 0) {
		return lib.ErrInvalidQuantity
	}
	err := database.WithRetry(ctx, func() error {
		result, err := ms.db.NewUpdate().
			Model(item).
			Column("name", "size", "price_cents", "stock", "is_active").
			Set("updated_at = ?", time.Now()).
			WherePK().
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
	return nil
}

// CreateCheckout reserves stock and opens a hosted checkout session for a
// merch purchase. Stock is decremented with a conditional update inside one
// transaction, so concurrent buyers can't oversell a limited run.
func (ms *MerchService) CreateCheckout(ctx context.Context, req *structs.MerchCheckoutRequest) (*structs.MerchCheckoutResponse, error) {
	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	for idStr, qty := range req.Items {
		if qty <= 0 {
			return nil, lib.ErrInvalidQuantity
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid merch item id: %s", idStr)
		}
		itemIDs = append(itemIDs, id)
	}

	orderID := uuid.New()
	order := &tables.MerchOrder{
		Id:        orderID,
		Name:      req.Name,
		Email:     req.Email,
		Status:    tables.MerchOrderStatusPendingPayment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	var lines []*tables.MerchOrderLine

	err := ms.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var items []tables.MerchItem
		if err := tx.NewSelect().
			Model(&items).
			Where("mi.id IN (?)", bun.In(itemIDs)).
			Scan(ctx); err != nil {
			return lib.MapPgError(err)
		}

		itemMap := make(map[uuid.UUID]*tables.MerchItem, len(items))
		for i := range items {
			itemMap[items[i].Id] = &items[i]
		}

		lines = lines[:0]
		order.TotalCents = 0
		for idStr, qty := range req.Items {
			id := uuid.MustParse(idStr)
			item, exists := itemMap[id]
			if !exists || !item.IsActive {
				return lib.ErrItemUnavailable
			}

			// Unlimited items (nil stock) skip the decrement entirely.
			if item.Stock != nil {
				result, err := tx.NewUpdate().
					Model((*tables.MerchItem)(nil)).
					Set("stock = stock - ?", qty).
					Set("updated_at = ?", time.Now()).
					Where("id = ?", id).
					Where("stock >= ?", qty).
					Exec(ctx)
				if err != nil {
					return lib.MapPgError(err)
				}
				rows, _ := result.RowsAffected()
				if rows == 0 {
					return lib.ErrInsufficientStock
				}
			}

			lines = append(lines, &tables.MerchOrderLine{
				Id:             uuid.New(),
				MerchOrderId:   orderID,
				MerchItemId:    id,
				Quantity:       qty,
				ItemName:       item.Name,
				ItemSize:       item.Size,
				UnitPriceCents: item.PriceCents,
			})
			order.TotalCents += item.PriceCents * int64(qty)
		}

		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		if _, err := tx.NewInsert().Model(&lines).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	session, err := ms.checkout.CreateSession(ctx, &CheckoutParams{
		ReferenceId:   orderID,
		Kind:          CheckoutKindMerch,
		AmountCents:   order.TotalCents,
		Description:   fmt.Sprintf("Merch order (%d items)", len(lines)),
		CustomerEmail: req.Email,
		SuccessURL:    ms.cfg.Server.FrontendURL + "/merch/confirmed",
		CancelURL:     ms.cfg.Server.FrontendURL + "/merch/cancelled",
	})
	if err != nil {
		// No session means the customer can never pay: release the stock
		// and cancel immediately instead of waiting for an expiry event.
		if cancelErr := ms.cancelAndRestock(ctx, orderID); cancelErr != nil {
			ms.logger.Error("Failed to release merch order after checkout failure",
				gecho.Field("error", cancelErr),
				gecho.Field("merch_order_id", orderID))
		}
		return nil, err
	}

	err = database.WithRetry(ctx, func() error {
		_, err := ms.db.NewUpdate().
			Model((*tables.MerchOrder)(nil)).
			Set("payment_session_id = ?", session.SessionId).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderID).
			Exec(ctx)
		return err
	})
	if err != nil {
		ms.logger.Error("Failed to store merch payment session id",
			gecho.Field("error", err),
			gecho.Field("merch_order_id", orderID),
			gecho.Field("session_id", session.SessionId))
	}

	ms.logger.Info("Merch checkout created",
		gecho.Field("merch_order_id", orderID),
		gecho.Field("total_cents", order.TotalCents),
		gecho.Field("session_id", session.SessionId))

	return &structs.MerchCheckoutResponse{
		OrderId:     orderID.String(),
		CheckoutURL: session.URL,
	}, nil
}

// MarkPaidBySession flips a merch order to paid when its checkout session
// completes. Replayed events find the order no longer pending and return
// without effect.
func (ms *MerchService) MarkPaidBySession(ctx context.Context, sessionID string) error {
	order, err := ms.findBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	if order.Status != tables.MerchOrderStatusPendingPayment {
		ms.logger.Info("Merch session already reconciled",
			gecho.Field("merch_order_id", order.Id),
			gecho.Field("status", order.Status))
		return nil
	}

	var transitioned bool
	err = database.WithRetry(ctx, func() error {
		result, err := ms.db.NewUpdate().
			Model((*tables.MerchOrder)(nil)).
			Set("status = ?", tables.MerchOrderStatusPaid).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", order.Id).
			Where("status = ?", tables.MerchOrderStatusPendingPayment).
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
		return nil
	}

	ms.logger.Info("Merch order paid", gecho.Field("merch_order_id", order.Id))

	go func() {
		paid, loadErr := ms.GetOrder(context.Background(), order.Id)
		if loadErr != nil {
			ms.logger.Error("Failed to load merch order for receipt",
				gecho.Field("error", loadErr),
				gecho.Field("merch_order_id", order.Id))
			return
		}
		if emailErr := ms.emailService.SendMerchReceiptEmail(paid); emailErr != nil {
			ms.logger.Error("Failed to send merch receipt",
				gecho.Field("error", emailErr),
				gecho.Field("merch_order_id", order.Id))
		}
	}()

	return nil
}

// HandleExpiredSession cancels an un-paid merch order and restores its
// reserved stock. Guarded on pending_payment, so an expiry racing a
// completion (or a replayed expiry) restores nothing twice.
func (ms *MerchService) HandleExpiredSession(ctx context.Context, sessionID string) error {
	order, err := ms.findBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	if order.Status != tables.MerchOrderStatusPendingPayment {
		return nil
	}

	return ms.cancelAndRestock(ctx, order.Id)
}

// cancelAndRestock flips a pending order to cancelled and returns its stock
// in the same transaction. The conditional status update is the idempotency
// guard: if another path already moved the order, nothing is restored.
func (ms *MerchService) cancelAndRestock(ctx context.Context, orderID uuid.UUID) error {
	return ms.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*tables.MerchOrder)(nil)).
			Set("status = ?", tables.MerchOrderStatusCancelled).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderID).
			Where("status = ?", tables.MerchOrderStatusPendingPayment).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return nil
		}

		var lines []tables.MerchOrderLine
		if err := tx.NewSelect().
			Model(&lines).
			Where("merch_order_id = ?", orderID).
			Scan(ctx); err != nil {
			return lib.MapPgError(err)
		}

		for _, line := range lines {
			// Only items still tracking stock get the restore; items made
			// unlimited since the reservation have nothing to give back.
			if _, err := tx.NewUpdate().
				Model((*tables.MerchItem)(nil)).
				Set("stock = stock + ?", line.Quantity).
				Set("updated_at = ?", time.Now()).
				Where("id = ?", line.MerchItemId).
				Where("stock IS NOT NULL").
				Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}

		ms.logger.Info("Merch order cancelled, stock restored",
			gecho.Field("merch_order_id", orderID),
			gecho.Field("lines", len(lines)))
		return nil
	})
}

// MarkShipped moves a paid merch order to shipped.
func (ms *MerchService) MarkShipped(ctx context.Context, orderID uuid.UUID) error {
	var transitioned bool
	err := database.WithRetry(ctx, func() error {
		result, err := ms.db.NewUpdate().
			Model((*tables.MerchOrder)(nil)).
			Set("status = ?", tables.MerchOrderStatusShipped).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", orderID).
			Where("status = ?", tables.MerchOrderStatusPaid).
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
		order, getErr := ms.GetOrder(ctx, orderID)
		if getErr != nil {
			return getErr
		}
		if order.Status == tables.MerchOrderStatusShipped {
			return nil
		}
		return fmt.Errorf("merch order %s is %s, only paid orders ship", orderID, order.Status)
	}

	ms.logger.Info("Merch order shipped", gecho.Field("merch_order_id", orderID))
	return nil
}

// GetOrder retrieves a merch order with its lines.
func (ms *MerchService) GetOrder(ctx context.Context, orderID uuid.UUID) (*tables.MerchOrder, error) {
	order := new(tables.MerchOrder)
	err := database.WithRetry(ctx, func() error {
		return ms.db.NewSelect().
			Model(order).
			Relation("Lines").
			Where("mo.id = ?", orderID).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return order, nil
}

// ListOrders returns merch orders for the admin console, newest first.
func (ms *MerchService) ListOrders(ctx context.Context, status *tables.MerchOrderStatus) ([]*tables.MerchOrder, error) {
	var orders []*tables.MerchOrder
	err := database.WithRetry(ctx, func() error {
		orders = nil
		query := ms.db.NewSelect().
			Model(&orders).
			Relation("Lines").
			Order("mo.created_at DESC")
		if status != nil {
			query = query.Where("mo.status = ?", *status)
		}
		return query.Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return orders, nil
}

func (ms *MerchService) findBySession(ctx context.Context, sessionID string) (*tables.MerchOrder, error) {
	if sessionID == "" {
		return nil, lib.ErrNotFound
	}

	order := new(tables.MerchOrder)
	err := database.WithRetry(ctx, func() error {
		return ms.db.NewSelect().
			Model(order).
			Where("payment_session_id = ?", sessionID).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return order, nil
}
