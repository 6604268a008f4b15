package memory

import (
	"time"

	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Identificadores fijos del set de demostración.
const (
	DemoCompanyID        = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e01"
	DemoLocationID       = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e10"
	DemoOutletID         = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e20"
	DemoOutletNoCheckID  = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e21"
	DemoBurgerID         = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e30"
	DemoSodaID           = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e31"
	DemoBunID            = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e40"
	DemoPattyID          = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e41"
	DemoCheeseID         = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e42"
	DemoBurgerBOMID      = "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e50"
	DemoPassword         = "demo1234"
	demoAdminEmail       = "admin@demo.local"
	demoSupervisorEmail  = "supervisor@demo.local"
	demoCashierEmail     = "cajero@demo.local"
	demoUnitMeasureUnits = "Unidades"
)

// SeedDemo carga una empresa con un producto vendido por lista de materiales, un producto
// estándar, dos puntos de venta (validación activa e inactiva) y un usuario por rol.
func SeedDemo(s *Store) error {
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.PutCompany(entity.Company{ID: DemoCompanyID, Name: "Demo Comidas", NIT: "900000001", Status: "active", CreatedAt: now, UpdatedAt: now})
	for i, u := range []struct{ email, name, role string }{
		{demoAdminEmail, "Administrador", entity.RoleAdmin},
		{demoSupervisorEmail, "Supervisor", entity.RoleSupervisor},
		{demoCashierEmail, "Cajero", entity.RoleCajero},
	} {
		s.PutUser(entity.User{
			ID:           demoID(0x60 + i),
			CompanyID:    DemoCompanyID,
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	s.PutLocation(entity.Location{ID: DemoLocationID, CompanyID: DemoCompanyID, Name: "Caja principal/Stock", Usage: entity.LocationUsageInternal, CreatedAt: now})
	off := false
	s.PutOutlet(entity.Outlet{ID: DemoOutletID, CompanyID: DemoCompanyID, Name: "Caja 1", StockLocationID: DemoLocationID, CreatedAt: now, UpdatedAt: now})
	s.PutOutlet(entity.Outlet{ID: DemoOutletNoCheckID, CompanyID: DemoCompanyID, Name: "Caja rápida", StockLocationID: DemoLocationID, BOMValidation: &off, CreatedAt: now, UpdatedAt: now})

	products := []entity.Product{
		{ID: DemoBurgerID, SKU: "HAM-001", Name: "Hamburguesa sencilla", Price: decimal.NewFromInt(18000), UseBOMInPOS: true},
		{ID: DemoSodaID, SKU: "BEB-001", Name: "Gaseosa 400ml", Price: decimal.NewFromInt(4500)},
		{ID: DemoBunID, SKU: "INS-PAN", Name: "Pan brioche", Price: decimal.Zero},
		{ID: DemoPattyID, SKU: "INS-CAR", Name: "Carne 150g", Price: decimal.Zero},
		{ID: DemoCheeseID, SKU: "INS-QUE", Name: "Queso tajado", Price: decimal.Zero},
	}
	for _, p := range products {
		p.CompanyID = DemoCompanyID
		p.UnitMeasure = demoUnitMeasureUnits
		p.CreatedAt, p.UpdatedAt = now, now
		s.PutProduct(p)
	}

	s.PutBOM(
		entity.BillOfMaterials{ID: DemoBurgerBOMID, CompanyID: DemoCompanyID, ProductID: DemoBurgerID, Code: "BOM-HAM-001", Active: true, Sequence: 1, CreatedAt: now, UpdatedAt: now},
		entity.BOMLine{ID: demoID(0x70), ComponentID: DemoBunID, Quantity: decimal.NewFromInt(1), UOMName: demoUnitMeasureUnits, Sequence: 1},
		entity.BOMLine{ID: demoID(0x71), ComponentID: DemoPattyID, Quantity: decimal.NewFromInt(1), UOMName: demoUnitMeasureUnits, Sequence: 2},
		entity.BOMLine{ID: demoID(0x72), ComponentID: DemoCheeseID, Quantity: decimal.NewFromInt(2), UOMName: demoUnitMeasureUnits, Sequence: 3},
	)

	s.SetStock(DemoBunID, DemoLocationID, decimal.NewFromInt(50))
	s.SetStock(DemoPattyID, DemoLocationID, decimal.NewFromInt(20))
	s.SetStock(DemoCheeseID, DemoLocationID, decimal.NewFromInt(30))
	s.SetStock(DemoSodaID, DemoLocationID, decimal.NewFromInt(24))
	return nil
}

func demoID(n int) string {
	const hex = "0123456789abcdef"
	return "5b0e7a52-6f0a-4d8e-9a57-2f4a1c0d9e" + string([]byte{hex[(n>>4)&0xf], hex[n&0xf]})
}
