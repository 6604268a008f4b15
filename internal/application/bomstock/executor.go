package bomstock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ExecutorConfig parámetros del ejecutor de descuentos.
type ExecutorConfig struct {
	ProductionLocationName string // ubicación de consumo creada por empresa si no existe
}

// LineDeduction datos de una línea pagada cuyo producto se vende por lista de materiales.
type LineDeduction struct {
	Order            *entity.Order
	Line             *entity.OrderLine
	Product          *entity.Product
	SourceLocationID string
	UserID           string
}

// DeductionExecutor convierte la venta de un producto con BOM en N movimientos de
// componentes. Nunca mueve el stock del producto padre.
type DeductionExecutor struct {
	txRunner    TxRunner
	resolver    *Resolver
	productRepo repository.ProductRepository
	outletRepo  repository.OutletRepository
	orderRepo   repository.OrderRepository
	validator   PickingValidator
	diagnostics DiagnosticSink
	cfg         ExecutorConfig
	log         zerolog.Logger
	now         func() time.Time
}

// NewDeductionExecutor construye el ejecutor. diagnostics puede ser nil (solo log).
func NewDeductionExecutor(
	txRunner TxRunner,
	resolver *Resolver,
	productRepo repository.ProductRepository,
	outletRepo repository.OutletRepository,
	orderRepo repository.OrderRepository,
	validator PickingValidator,
	diagnostics DiagnosticSink,
	cfg ExecutorConfig,
	log zerolog.Logger,
) *DeductionExecutor {
	if cfg.ProductionLocationName == "" {
		cfg.ProductionLocationName = entity.DefaultProductionLocationName
	}
	return &DeductionExecutor{
		txRunner:    txRunner,
		resolver:    resolver,
		productRepo: productRepo,
		outletRepo:  outletRepo,
		orderRepo:   orderRepo,
		validator:   validator,
		diagnostics: diagnostics,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// Deduct descuenta los componentes de una línea de un pedido ya pagado en su propia transacción.
// Líneas sin BOM o ya descontadas son un no-op.
func (e *DeductionExecutor) Deduct(ctx context.Context, companyID, orderID, lineID, userID string) error {
	order, err := e.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return domain.ErrForbidden
	}
	outlet, err := e.outletRepo.GetByID(ctx, order.OutletID)
	if err != nil {
		return err
	}
	if outlet == nil {
		return domain.ErrNotFound
	}

	var picking *entity.Picking
	err = e.txRunner.RunPOS(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		pickingRepo repository.PickingRepository,
		locationRepo repository.LocationRepository,
		orderRepo repository.OrderRepository,
	) error {
		line, err := orderRepo.GetLineForUpdate(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.OrderID != order.ID {
			return domain.ErrNotFound
		}
		product, err := e.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		picking, err = e.DeductLineInTx(ctx, stockRepo, movRepo, pickingRepo, locationRepo, orderRepo, LineDeduction{
			Order:            order,
			Line:             line,
			Product:          product,
			SourceLocationID: outlet.StockLocationID,
			UserID:           userID,
		})
		return err
	})
	if err != nil {
		return err
	}
	if picking != nil {
		e.CompletePickings(ctx, order, []*entity.Picking{picking})
	}
	return nil
}

// DeductLineInTx ejecuta el descuento con los repositorios de la transacción del caller.
// Verifica todos los componentes (primer faltante, con bloqueo de fila) antes de crear
// cualquier movimiento; un faltante devuelve *domain.InsufficientStockError y el caller
// hace Rollback. Devuelve el documento creado, o nil si no hubo nada que mover.
func (e *DeductionExecutor) DeductLineInTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	pickingRepo repository.PickingRepository,
	locationRepo repository.LocationRepository,
	orderRepo repository.OrderRepository,
	in LineDeduction,
) (*entity.Picking, error) {
	if !in.Product.SellsByBOM() {
		return nil, nil
	}
	log := e.log.With().
		Str("order_id", in.Order.ID).
		Str("line_id", in.Line.ID).
		Str("product_id", in.Product.ID).
		Logger()
	if in.Line.BOMDeductedAt != nil {
		log.Info().Time("deducted_at", *in.Line.BOMDeductedAt).Msg("línea BOM ya descontada, se omite")
		return nil, nil
	}
	if !in.Line.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceLocationID == "" {
		return nil, fmt.Errorf("punto de venta sin ubicación origen: %w", domain.ErrInvalidInput)
	}

	components, err := e.resolver.ComponentsFor(ctx, in.Product)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		log.Warn().Msg("producto con BOM sin lista activa, no hay componentes que descontar")
		return nil, nil
	}

	// 1) Verificación con bloqueo: el mismo componente puede repetirse en la lista,
	//    por eso se descuenta contra el remanente ya comprometido.
	locked := make(map[string]*entity.Stock, len(components))
	required := make([]decimal.Decimal, len(components))
	for i, c := range components {
		required[i] = bom.Required(c, in.Line.Quantity)
		st, ok := locked[c.ComponentID]
		if !ok {
			st, err = stockRepo.GetForUpdate(ctx, c.ComponentID, in.SourceLocationID)
			if err != nil {
				return nil, err
			}
			locked[c.ComponentID] = st
		}
		if st.Quantity.LessThan(required[i]) {
			log.Info().
				Str("component_id", c.ComponentID).
				Str("available", st.Quantity.String()).
				Str("required", required[i].String()).
				Msg("descuento BOM bloqueado por stock insuficiente")
			return nil, &domain.InsufficientStockError{
				ComponentID:   c.ComponentID,
				ComponentName: c.ComponentName,
				Available:     st.Quantity,
				Required:      required[i],
			}
		}
		st.Quantity = st.Quantity.Sub(required[i])
	}
	// Restaurar cantidades leídas; el paso done aplica el descuento real.
	for i, c := range components {
		locked[c.ComponentID].Quantity = locked[c.ComponentID].Quantity.Add(required[i])
	}

	now := e.now()
	dest, err := inventory.EnsureLocation(ctx, locationRepo, in.Order.CompanyID,
		entity.LocationUsageProduction, e.cfg.ProductionLocationName, now)
	if err != nil {
		return nil, err
	}

	// 2) Documento que agrupa los movimientos de la línea
	picking := &entity.Picking{
		ID:               uuid.New().String(),
		CompanyID:        in.Order.CompanyID,
		Name:             fmt.Sprintf("%s/BOM/%03d", in.Order.Name, in.Line.Sequence),
		Type:             entity.PickingTypeInternal,
		Origin:           in.Order.Name,
		SourceLocationID: in.SourceLocationID,
		DestLocationID:   dest.ID,
		State:            entity.PickingStateDraft,
		CreatedAt:        now,
	}
	if err := pickingRepo.Create(ctx, picking); err != nil {
		return nil, err
	}

	// 3) Un movimiento por componente: draft → confirmed → assigned → done
	for i, c := range components {
		mov := &entity.StockMovement{
			ID:               uuid.New().String(),
			CompanyID:        in.Order.CompanyID,
			Name:             fmt.Sprintf("POS BOM: %s - %s", in.Product.Name, c.ComponentName),
			Type:             entity.MovementTypeBOM,
			ProductID:        c.ComponentID,
			UOMID:            c.UOMID,
			Quantity:         required[i],
			SourceLocationID: in.SourceLocationID,
			DestLocationID:   dest.ID,
			State:            entity.MovementStateDraft,
			Origin:           in.Order.Name,
			OrderID:          in.Order.ID,
			OrderLineID:      in.Line.ID,
			PickingID:        picking.ID,
			Date:             now,
			CreatedAt:        now,
			CreatedBy:        in.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
		if err := e.advance(ctx, movRepo, mov, entity.MovementStateConfirmed); err != nil {
			return nil, err
		}
		if err := e.advance(ctx, movRepo, mov, entity.MovementStateAssigned); err != nil {
			return nil, err
		}
		if err := e.done(ctx, stockRepo, movRepo, mov, locked[c.ComponentID], now); err != nil {
			return nil, err
		}
	}

	if err := orderRepo.MarkBOMDeducted(ctx, in.Line.ID, now); err != nil {
		return nil, err
	}
	in.Line.BOMDeductedAt = &now
	log.Info().Int("components", len(components)).Str("picking", picking.Name).Msg("componentes BOM descontados")
	return picking, nil
}

// CompletePickings valida los documentos después del Commit. Un fallo aquí no anula la venta:
// se registra como advertencia y se publica como evento de diagnóstico.
func (e *DeductionExecutor) CompletePickings(ctx context.Context, order *entity.Order, pickings []*entity.Picking) {
	if e.validator == nil {
		return
	}
	for _, p := range pickings {
		err := e.validator.Validate(ctx, p.ID)
		if err == nil {
			continue
		}
		e.log.Warn().Err(err).
			Str("order_id", order.ID).
			Str("picking", p.Name).
			Msg("no se pudo validar automáticamente el documento BOM")
		if e.diagnostics == nil {
			continue
		}
		event := DiagnosticEvent{
			Type:        EventDownstreamWorkflowFailure,
			CompanyID:   order.CompanyID,
			OrderID:     order.ID,
			OrderName:   order.Name,
			PickingID:   p.ID,
			PickingName: p.Name,
			Message:     err.Error(),
			OccurredAt:  e.now(),
		}
		if perr := e.diagnostics.Publish(ctx, event); perr != nil {
			e.log.Error().Err(perr).Str("picking", p.Name).Msg("publicar evento de diagnóstico")
		}
	}
}

func (e *DeductionExecutor) advance(ctx context.Context, movRepo repository.StockMovementRepository, mov *entity.StockMovement, to string) error {
	if err := mov.Advance(to); err != nil {
		return err
	}
	return movRepo.UpdateState(ctx, mov.ID, to)
}

// done aplica el descuento en la ubicación origen (fila ya bloqueada) y suma el consumo en la
// ubicación destino con un incremento atómico.
func (e *DeductionExecutor) done(
	ctx context.Context,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	mov *entity.StockMovement,
	origin *entity.Stock,
	now time.Time,
) error {
	origin.Quantity = origin.Quantity.Sub(mov.Quantity)
	origin.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, origin); err != nil {
		return err
	}
	if err := stockRepo.Add(ctx, mov.ProductID, mov.DestLocationID, mov.Quantity); err != nil {
		return err
	}
	return e.advance(ctx, movRepo, mov, entity.MovementStateDone)
}
