package entity

import "time"

// Usos de ubicación de inventario.
const (
	LocationUsageInternal   = "internal"   // bodega / punto de venta
	LocationUsageProduction = "production" // consumo de componentes (virtual)
	LocationUsageCustomer   = "customer"   // salida por venta estándar (virtual)
	LocationUsageInventory  = "inventory"  // contrapartida de entradas y ajustes (virtual)
)

// IsVirtualUsage indica si el uso admite una sola ubicación por empresa.
func IsVirtualUsage(usage string) bool {
	switch usage {
	case LocationUsageProduction, LocationUsageCustomer, LocationUsageInventory:
		return true
	}
	return false
}

// DefaultProductionLocationName nombre de la ubicación de consumo creada por empresa cuando no existe.
const DefaultProductionLocationName = "POS BOM Production"

// Nombres de las ubicaciones virtuales del motor de inventario.
const (
	CustomerLocationName  = "Clientes"
	InventoryLocationName = "Ajustes de inventario"
)

// Location ubicación de inventario (física o virtual) de una empresa.
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Usage     string // internal, production, customer, inventory
	CreatedAt time.Time
}
