package dto

import "github.com/shopspring/decimal"

// POSProductResponse producto tal como lo carga la sesión del POS.
type POSProductResponse struct {
	ID          string              `json:"id"`
	SKU         string              `json:"sku"`
	Name        string              `json:"name"`
	Price       decimal.Decimal     `json:"price"`
	UnitMeasure string              `json:"unit_measure"`
	UseBOMInPOS bool                `json:"use_bom_in_pos"`
	HasBOM      bool                `json:"has_bom"`
	Components  []ComponentResponse `json:"components,omitempty"`
}

// POSProductListResponse lista paginada de productos de la sesión.
type POSProductListResponse struct {
	Items []POSProductResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ComponentResponse componente por unidad del producto.
type ComponentResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UOMID       string          `json:"uom_id,omitempty"`
	UOMName     string          `json:"uom_name,omitempty"`
}

// ComponentListResponse respuesta de GET /api/pos/products/:id/components.
type ComponentListResponse struct {
	ProductID  string              `json:"product_id"`
	Components []ComponentResponse `json:"components"`
}
