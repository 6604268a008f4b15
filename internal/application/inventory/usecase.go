package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// Para IN/OUT/ADJUSTMENT: ProductID, LocationID, Type, Quantity (ADJUSTMENT admite negativos).
// Para TRANSFER: ProductID, FromLocationID, ToLocationID, Type=TRANSFER, Quantity.
type MovementInputDTO struct {
	CompanyID      string
	UserID         string
	ProductID      string
	LocationID     string
	FromLocationID string
	ToLocationID   string
	Type           string
	Quantity       decimal.Decimal
	Reference      string
}

// SaleOutInput salida estándar de un producto vendido sin lista de materiales.
type SaleOutInput struct {
	CompanyID   string
	UserID      string
	ProductID   string
	LocationID  string
	Quantity    decimal.Decimal
	OrderID     string
	OrderLineID string
	Origin      string
	Now         time.Time
}

// RegisterMovement inicia una transacción, bloquea la fila de stock (SELECT FOR UPDATE),
// aplica la lógica según tipo y hace Commit o Rollback.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) error {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
		if input.ProductID == "" || input.LocationID == "" {
			return domain.ErrInvalidInput
		}
		if input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
		if input.Type != entity.MovementTypeADJUSTMENT && input.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		if input.ProductID == "" || input.FromLocationID == "" || input.ToLocationID == "" {
			return domain.ErrInvalidInput
		}
		if input.FromLocationID == input.ToLocationID || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	// Validar que producto y ubicación(es) existan y sean de la empresa
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return domain.ErrForbidden
	}
	ids := []string{input.LocationID}
	if input.Type == entity.MovementTypeTRANSFER {
		ids = []string{input.FromLocationID, input.ToLocationID}
	}
	for _, id := range ids {
		loc, _ := uc.locationRepo.GetByID(ctx, id)
		if loc == nil || loc.CompanyID != input.CompanyID {
			return domain.ErrNotFound
		}
	}

	now := time.Now()
	if input.Reference == "" {
		input.Reference = uuid.New().String()
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		locationRepo repository.LocationRepository,
	) error {
		switch input.Type {
		case entity.MovementTypeIN:
			return uc.doIN(ctx, movRepo, stockRepo, locationRepo, input, now)
		case entity.MovementTypeOUT:
			return uc.doOUT(ctx, movRepo, stockRepo, locationRepo, input, now)
		case entity.MovementTypeADJUSTMENT:
			return uc.doADJUSTMENT(ctx, movRepo, stockRepo, locationRepo, input, now)
		case entity.MovementTypeTRANSFER:
			return uc.doTRANSFER(ctx, movRepo, stockRepo, input, now)
		}
		return domain.ErrInvalidInput
	})
}

// RegisterOUTInTx ejecuta una salida estándar usando los repositorios proporcionados (misma
// transacción del caller). Es el camino de los productos vendidos sin lista de materiales.
func (uc *RegisterMovementUseCase) RegisterOUTInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	in SaleOutInput,
) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.LocationID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(in.Quantity) {
		return domain.ErrInsufficientStock
	}
	dest, err := EnsureLocation(ctx, locationRepo, in.CompanyID,
		entity.LocationUsageCustomer, entity.CustomerLocationName, in.Now)
	if err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Sub(in.Quantity)
	stock.UpdatedAt = in.Now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}
	return movRepo.Create(ctx, &entity.StockMovement{
		ID:               uuid.New().String(),
		CompanyID:        in.CompanyID,
		Name:             "POS: " + in.Origin,
		Type:             entity.MovementTypeOUT,
		ProductID:        in.ProductID,
		Quantity:         in.Quantity,
		SourceLocationID: in.LocationID,
		DestLocationID:   dest.ID,
		State:            entity.MovementStateDone,
		Origin:           in.Origin,
		OrderID:          in.OrderID,
		OrderLineID:      in.OrderLineID,
		Date:             in.Now,
		CreatedAt:        in.Now,
		CreatedBy:        in.UserID,
	})
}

// doIN: suma stock con incremento atómico y guarda el movimiento desde la ubicación de ajustes.
func (uc *RegisterMovementUseCase) doIN(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	input MovementInputDTO,
	now time.Time,
) error {
	virtual, err := EnsureLocation(ctx, locationRepo, input.CompanyID,
		entity.LocationUsageInventory, entity.InventoryLocationName, now)
	if err != nil {
		return err
	}
	if err := stockRepo.Add(ctx, input.ProductID, input.LocationID, input.Quantity); err != nil {
		return err
	}
	return movRepo.Create(ctx, newManualMovement(input, input.Type, input.Quantity, virtual.ID, input.LocationID, now))
}

// doOUT: bloquea fila, verifica StockActual >= CantidadSolicitada, resta cantidad, guarda movimiento.
func (uc *RegisterMovementUseCase) doOUT(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	input MovementInputDTO,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.LocationID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	usage, name := entity.LocationUsageCustomer, entity.CustomerLocationName
	if input.Type == entity.MovementTypeADJUSTMENT {
		usage, name = entity.LocationUsageInventory, entity.InventoryLocationName
	}
	virtual, err := EnsureLocation(ctx, locationRepo, input.CompanyID, usage, name, now)
	if err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Sub(input.Quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}
	return movRepo.Create(ctx, newManualMovement(input, input.Type, input.Quantity, input.LocationID, virtual.ID, now))
}

// doADJUSTMENT: positivo como IN, negativo como OUT.
func (uc *RegisterMovementUseCase) doADJUSTMENT(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	input MovementInputDTO,
	now time.Time,
) error {
	if input.Quantity.GreaterThan(decimal.Zero) {
		return uc.doIN(ctx, movRepo, stockRepo, locationRepo, input, now)
	}
	adjOut := input
	adjOut.Quantity = input.Quantity.Neg()
	return uc.doOUT(ctx, movRepo, stockRepo, locationRepo, adjOut, now)
}

// doTRANSFER: resta de la ubicación origen y suma en destino en la misma transacción.
func (uc *RegisterMovementUseCase) doTRANSFER(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	input MovementInputDTO,
	now time.Time,
) error {
	origin, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.FromLocationID)
	if err != nil {
		return err
	}
	if origin.Quantity.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	origin.Quantity = origin.Quantity.Sub(input.Quantity)
	origin.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, origin); err != nil {
		return err
	}
	if err := stockRepo.Add(ctx, input.ProductID, input.ToLocationID, input.Quantity); err != nil {
		return err
	}
	return movRepo.Create(ctx, newManualMovement(input, entity.MovementTypeTRANSFER, input.Quantity,
		input.FromLocationID, input.ToLocationID, now))
}

func newManualMovement(input MovementInputDTO, movType string, qty decimal.Decimal, from, to string, now time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:               uuid.New().String(),
		CompanyID:        input.CompanyID,
		Name:             movType + ": " + input.Reference,
		Type:             movType,
		ProductID:        input.ProductID,
		Quantity:         qty,
		SourceLocationID: from,
		DestLocationID:   to,
		State:            entity.MovementStateDone,
		Origin:           input.Reference,
		Date:             now,
		CreatedAt:        now,
		CreatedBy:        input.UserID,
	}
}
