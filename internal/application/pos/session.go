package pos

import (
	"context"

	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/dto"
	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SessionUseCase consultas de la sesión de caja.
type SessionUseCase struct {
	gate        *bomstock.ValidationGate
	resolver    *bomstock.Resolver
	productRepo repository.ProductRepository
	outletRepo  repository.OutletRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	gate *bomstock.ValidationGate,
	resolver *bomstock.Resolver,
	productRepo repository.ProductRepository,
	outletRepo repository.OutletRepository,
) *SessionUseCase {
	return &SessionUseCase{gate: gate, resolver: resolver, productRepo: productRepo, outletRepo: outletRepo}
}

// LoadProducts carga el catálogo de la empresa para el punto de venta, con los componentes
// de cada producto que se vende por lista de materiales.
func (uc *SessionUseCase) LoadProducts(ctx context.Context, companyID, outletID string, page dto.PageRequest) (*dto.POSProductListResponse, error) {
	outlet, err := uc.outletRepo.GetByID(ctx, outletID)
	if err != nil {
		return nil, err
	}
	if outlet == nil || outlet.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	products, err := uc.productRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.POSProductResponse, 0, len(products))
	for _, p := range products {
		item := dto.POSProductResponse{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Price:       p.Price,
			UnitMeasure: p.UnitMeasure,
			UseBOMInPOS: p.UseBOMInPOS,
			HasBOM:      p.HasBOM,
		}
		if p.SellsByBOM() {
			components, err := uc.resolver.ComponentsFor(ctx, p)
			if err != nil {
				return nil, err
			}
			item.Components = ToComponentResponses(components)
		}
		items = append(items, item)
	}
	return &dto.POSProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Components devuelve los componentes por unidad de un producto de la empresa.
func (uc *SessionUseCase) Components(ctx context.Context, companyID, productID string) (*dto.ComponentListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	components, err := uc.resolver.ComponentsFor(ctx, product)
	if err != nil {
		return nil, err
	}
	return &dto.ComponentListResponse{ProductID: product.ID, Components: ToComponentResponses(components)}, nil
}

// CheckAvailability verificación consultiva al agregar un producto al carrito.
func (uc *SessionUseCase) CheckAvailability(ctx context.Context, companyID, outletID, productID string, qty decimal.Decimal) bom.Verdict {
	return uc.gate.CheckAvailability(ctx, companyID, productID, qty, outletID)
}
