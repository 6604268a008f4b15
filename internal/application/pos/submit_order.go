package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/dto"
	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SubmitOrderUseCase confirma un pedido pagado: validación BOM previa, persistencia del pedido
// y descuento de stock de todas sus líneas en una sola transacción.
type SubmitOrderUseCase struct {
	gate        *bomstock.ValidationGate
	executor    *bomstock.DeductionExecutor
	movements   *inventory.RegisterMovementUseCase
	txRunner    bomstock.TxRunner
	productRepo repository.ProductRepository
	outletRepo  repository.OutletRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewSubmitOrderUseCase construye el caso de uso.
func NewSubmitOrderUseCase(
	gate *bomstock.ValidationGate,
	executor *bomstock.DeductionExecutor,
	movements *inventory.RegisterMovementUseCase,
	txRunner bomstock.TxRunner,
	productRepo repository.ProductRepository,
	outletRepo repository.OutletRepository,
	log zerolog.Logger,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		gate:        gate,
		executor:    executor,
		movements:   movements,
		txRunner:    txRunner,
		productRepo: productRepo,
		outletRepo:  outletRepo,
		log:         log,
		now:         time.Now,
	}
}

// Validate ejecuta solo la validación previa al pago (sin persistir nada).
func (uc *SubmitOrderUseCase) Validate(ctx context.Context, companyID string, in dto.OrderRequest) bomstock.OrderVerdict {
	return uc.gate.ValidateOrder(ctx, companyID, in.OutletID, toLineInputs(in.Lines))
}

// Submit valida y confirma el pedido. Si alguna línea no pasa la validación devuelve
// *OrderRejectedError; si el descuento falla no queda ningún pedido ni movimiento persistido.
func (uc *SubmitOrderUseCase) Submit(ctx context.Context, companyID, userID string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	if in.OutletID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// 1) Validación autoritativa antes del pago
	verdict := uc.gate.ValidateOrder(ctx, companyID, in.OutletID, toLineInputs(in.Lines))
	if !verdict.Valid {
		return nil, &OrderRejectedError{Verdict: verdict}
	}

	outlet, err := uc.outletRepo.GetByID(ctx, in.OutletID)
	if err != nil {
		return nil, err
	}
	if outlet == nil || outlet.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	// 2) Armar pedido y líneas con los productos vigentes
	now := uc.now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		OutletID:  outlet.ID,
		State:     entity.OrderStatePaid,
		Total:     decimal.Zero,
		CreatedAt: now,
		CreatedBy: userID,
	}
	order.Name = orderName(outlet.Name, order.ID, now)

	products := make([]*entity.Product, len(in.Lines))
	lines := make([]*entity.OrderLine, len(in.Lines))
	names := make(map[string]string, len(in.Lines))
	for i, l := range in.Lines {
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		price := product.Price
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		subtotal := price.Mul(l.Quantity)
		products[i] = product
		names[product.ID] = product.Name
		lines[i] = &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Sequence:  i + 1,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
		}
		order.Total = order.Total.Add(subtotal)
	}

	// 3) Persistir y descontar en el orden de ingreso de las líneas
	var pickings []*entity.Picking
	err = uc.txRunner.RunPOS(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		pickingRepo repository.PickingRepository,
		locationRepo repository.LocationRepository,
		orderRepo repository.OrderRepository,
	) error {
		pickings = pickings[:0]
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i, line := range lines {
			if err := orderRepo.CreateLine(ctx, line); err != nil {
				return err
			}
			if products[i].SellsByBOM() {
				picking, err := uc.executor.DeductLineInTx(ctx, stockRepo, movRepo, pickingRepo, locationRepo, orderRepo,
					bomstock.LineDeduction{
						Order:            order,
						Line:             line,
						Product:          products[i],
						SourceLocationID: outlet.StockLocationID,
						UserID:           userID,
					})
				if err != nil {
					return err
				}
				if picking != nil {
					pickings = append(pickings, picking)
				}
				continue
			}
			err := uc.movements.RegisterOUTInTx(ctx, movRepo, stockRepo, locationRepo, inventory.SaleOutInput{
				CompanyID:   companyID,
				UserID:      userID,
				ProductID:   line.ProductID,
				LocationID:  outlet.StockLocationID,
				Quantity:    line.Quantity,
				OrderID:     order.ID,
				OrderLineID: line.ID,
				Origin:      order.Name,
				Now:         now,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", products[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("outlet_id", outlet.ID).Msg("pedido POS no confirmado")
		return nil, err
	}

	// 4) Flujo posterior (best effort)
	uc.executor.CompletePickings(ctx, order, pickings)

	uc.log.Info().
		Str("order_id", order.ID).
		Str("order", order.Name).
		Int("lines", len(lines)).
		Int("pickings", len(pickings)).
		Msg("pedido POS confirmado")
	return toOrderResponse(order, lines, names, pickings), nil
}

func toLineInputs(lines []dto.OrderLineRequest) []bomstock.OrderLineInput {
	out := make([]bomstock.OrderLineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, bomstock.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

// orderName arma la referencia visible del pedido: punto de venta, segundo de la venta y los
// primeros 8 caracteres del ID. Es única por empresa.
func orderName(outletName, orderID string, at time.Time) string {
	return fmt.Sprintf("%s/%s-%s", outletName, at.Format("20060102-150405"), strings.ToUpper(orderID[:8]))
}
