package pos

import (
	"context"
	"time"

	"github.com/jhoicas/pos-bom/internal/domain"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/internal/domain/repository"
)

// ReceiptUseCase arma el recibo de un pedido con el detalle de componentes consumidos.
type ReceiptUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	outletRepo   repository.OutletRepository
	companyRepo  repository.CompanyRepository
	movRepo      repository.StockMovementRepository
	pdfGenerator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso. pdfGenerator puede ser nil (solo datos).
func NewReceiptUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	outletRepo repository.OutletRepository,
	companyRepo repository.CompanyRepository,
	movRepo repository.StockMovementRepository,
	pdfGenerator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		outletRepo:   outletRepo,
		companyRepo:  companyRepo,
		movRepo:      movRepo,
		pdfGenerator: pdfGenerator,
	}
}

// Build arma los datos del recibo. Las líneas BOM listan los movimientos de componentes del pedido.
func (uc *ReceiptUseCase) Build(ctx context.Context, companyID, orderID, cashier string) (*Receipt, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	outlet, err := uc.outletRepo.GetByID(ctx, order.OutletID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.orderRepo.ListLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	moves, err := uc.movRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	byLine := make(map[string][]*entity.StockMovement)
	for _, m := range moves {
		if m.Type == entity.MovementTypeBOM {
			byLine[m.OrderLineID] = append(byLine[m.OrderLineID], m)
		}
	}

	receipt := &Receipt{
		Company:   company,
		Outlet:    outlet,
		Order:     order,
		Cashier:   cashier,
		Lines:     make([]ReceiptLine, 0, len(lines)),
		PrintedAt: time.Now(),
	}
	for _, l := range lines {
		name := l.ProductID
		if p, _ := uc.productRepo.GetByID(ctx, l.ProductID); p != nil {
			name = p.Name
		}
		rl := ReceiptLine{
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
		for _, m := range byLine[l.ID] {
			c := ReceiptComponent{Name: m.ProductID, Quantity: m.Quantity}
			if p, _ := uc.productRepo.GetByID(ctx, m.ProductID); p != nil {
				c.Name, c.UOMName = p.Name, p.UnitMeasure
			}
			rl.Components = append(rl.Components, c)
		}
		receipt.Lines = append(receipt.Lines, rl)
	}
	return receipt, nil
}

// PDF genera el recibo en PDF.
func (uc *ReceiptUseCase) PDF(ctx context.Context, companyID, orderID, cashier string) ([]byte, string, error) {
	if uc.pdfGenerator == nil {
		return nil, "", domain.ErrNotFound
	}
	receipt, err := uc.Build(ctx, companyID, orderID, cashier)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdfGenerator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", err
	}
	return doc, receipt.Order.Name, nil
}
