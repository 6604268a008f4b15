package bomstock

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Mensajes de rechazo que no corresponden a un componente.
const (
	msgOutletNotFound  = "punto de venta no encontrado"
	msgProductNotFound = "producto no encontrado"
	msgInvalidQuantity = "cantidad inválida"
	msgCheckFailed     = "no se pudo validar el stock de la lista de materiales, intente de nuevo"
)

// GateConfig configuración explícita con la que se evalúa cada verificación.
type GateConfig struct {
	ValidationEnabled bool
}

// OrderLineInput línea a validar antes del pago.
type OrderLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// LineError veredicto negativo de una línea del pedido.
type LineError struct {
	Index       int             `json:"index"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Verdict     bom.Verdict     `json:"verdict"`
}

// OrderVerdict resultado agregado de la validación de un pedido completo.
type OrderVerdict struct {
	Valid    bool        `json:"valid"`
	Bypassed bool        `json:"bypassed,omitempty"`
	Errors   []LineError `json:"errors,omitempty"`
}

// Message mensaje agregado para el operador, una línea por producto rechazado.
func (v OrderVerdict) Message() string {
	if v.Valid {
		return ""
	}
	var b strings.Builder
	b.WriteString("validación BOM fallida:")
	for _, e := range v.Errors {
		name := e.ProductName
		if name == "" {
			name = e.ProductID
		}
		fmt.Fprintf(&b, "\n%s (cant: %s): %s", name, e.Quantity.String(), e.Verdict.Message)
	}
	return b.String()
}

// ValidationGate orquesta el resolvedor y la verificación de disponibilidad en los dos
// puntos de la venta (al agregar al carrito y antes del pago) respetando el interruptor
// del punto de venta. Los errores internos se convierten en veredictos negativos.
type ValidationGate struct {
	resolver    *Resolver
	productRepo repository.ProductRepository
	outletRepo  repository.OutletRepository
	stock       bom.StockReader
	defaultOn   bool
	log         zerolog.Logger
}

// NewValidationGate construye la compuerta. defaultEnabled aplica a puntos de venta sin valor configurado.
func NewValidationGate(
	resolver *Resolver,
	productRepo repository.ProductRepository,
	outletRepo repository.OutletRepository,
	stockRepo repository.StockRepository,
	defaultEnabled bool,
	log zerolog.Logger,
) *ValidationGate {
	return &ValidationGate{
		resolver:    resolver,
		productRepo: productRepo,
		outletRepo:  outletRepo,
		stock:       NewStockReader(stockRepo),
		defaultOn:   defaultEnabled,
		log:         log,
	}
}

// ConfigFor deriva la configuración de la compuerta para un punto de venta.
func (g *ValidationGate) ConfigFor(outlet *entity.Outlet) GateConfig {
	return GateConfig{ValidationEnabled: outlet.BOMValidationEnabledOr(g.defaultOn)}
}

// Evaluate verifica un producto ya cargado con una configuración explícita.
// Con la validación deshabilitada devuelve un veredicto válido sin consultar stock.
func (g *ValidationGate) Evaluate(
	ctx context.Context,
	cfg GateConfig,
	product *entity.Product,
	quantity decimal.Decimal,
	locationID string,
) bom.Verdict {
	if !cfg.ValidationEnabled {
		return bom.BypassedVerdict()
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return bom.Rejected(msgInvalidQuantity)
	}
	if !product.SellsByBOM() {
		return bom.ValidVerdict()
	}
	components, err := g.resolver.ComponentsFor(ctx, product)
	if err != nil {
		g.log.Error().Err(err).Str("product_id", product.ID).Msg("resolver componentes BOM")
		return bom.Rejected(msgCheckFailed)
	}
	verdict, err := bom.CheckAvailability(ctx, g.stock, components, quantity, locationID)
	if err != nil {
		g.log.Error().Err(err).Str("product_id", product.ID).Str("location_id", locationID).Msg("verificar stock BOM")
		return bom.Rejected(msgCheckFailed)
	}
	return verdict
}

// CheckAvailability verificación previa a agregar un producto al carrito (consultiva).
func (g *ValidationGate) CheckAvailability(
	ctx context.Context,
	companyID, productID string,
	quantity decimal.Decimal,
	outletID string,
) bom.Verdict {
	outlet, verdict, ok := g.loadOutlet(ctx, companyID, outletID)
	if !ok {
		return verdict
	}
	cfg := g.ConfigFor(outlet)
	if !cfg.ValidationEnabled {
		g.logBypass(outlet)
		return bom.BypassedVerdict()
	}
	product, err := g.productRepo.GetByID(ctx, productID)
	if err != nil {
		g.log.Error().Err(err).Str("product_id", productID).Msg("cargar producto")
		return bom.Rejected(msgCheckFailed)
	}
	if product == nil || product.CompanyID != companyID {
		return bom.Rejected(msgProductNotFound)
	}
	return g.Evaluate(ctx, cfg, product, quantity, outlet.StockLocationID)
}

// ValidateOrder verificación autoritativa antes del pago: evalúa cada línea en el orden de
// ingreso contra el stock vigente. Cualquier línea inválida invalida el pedido completo.
func (g *ValidationGate) ValidateOrder(
	ctx context.Context,
	companyID, outletID string,
	lines []OrderLineInput,
) OrderVerdict {
	outlet, verdict, ok := g.loadOutlet(ctx, companyID, outletID)
	if !ok {
		return OrderVerdict{Valid: false, Errors: []LineError{{Index: -1, Verdict: verdict}}}
	}
	cfg := g.ConfigFor(outlet)
	if !cfg.ValidationEnabled {
		g.logBypass(outlet)
		return OrderVerdict{Valid: true, Bypassed: true}
	}

	result := OrderVerdict{Valid: true}
	for i, line := range lines {
		product, err := g.productRepo.GetByID(ctx, line.ProductID)
		var v bom.Verdict
		switch {
		case err != nil:
			g.log.Error().Err(err).Str("product_id", line.ProductID).Msg("cargar producto")
			v = bom.Rejected(msgCheckFailed)
		case product == nil || product.CompanyID != companyID:
			v = bom.Rejected(msgProductNotFound)
		default:
			v = g.Evaluate(ctx, cfg, product, line.Quantity, outlet.StockLocationID)
		}
		if v.Valid {
			continue
		}
		name := ""
		if product != nil {
			name = product.Name
		}
		result.Valid = false
		result.Errors = append(result.Errors, LineError{
			Index:       i,
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			Verdict:     v,
		})
	}
	if !result.Valid {
		g.log.Info().
			Str("outlet_id", outlet.ID).
			Int("lines_rejected", len(result.Errors)).
			Msg("pedido rechazado por validación BOM")
	}
	return result
}

func (g *ValidationGate) loadOutlet(ctx context.Context, companyID, outletID string) (*entity.Outlet, bom.Verdict, bool) {
	outlet, err := g.outletRepo.GetByID(ctx, outletID)
	if err != nil {
		g.log.Error().Err(err).Str("outlet_id", outletID).Msg("cargar punto de venta")
		return nil, bom.Rejected(msgCheckFailed), false
	}
	if outlet == nil || outlet.CompanyID != companyID {
		return nil, bom.Rejected(msgOutletNotFound), false
	}
	return outlet, bom.Verdict{}, true
}

func (g *ValidationGate) logBypass(outlet *entity.Outlet) {
	g.log.Debug().Str("outlet_id", outlet.ID).Msg("validación BOM deshabilitada en el punto de venta")
}
