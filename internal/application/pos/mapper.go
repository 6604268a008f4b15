package pos

import (
	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/dto"
	"github.com/jhoicas/pos-bom/internal/domain/bom"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
)

// ToVerdictResponse convierte un veredicto de disponibilidad al DTO HTTP.
func ToVerdictResponse(v bom.Verdict) dto.VerdictResponse {
	out := dto.VerdictResponse{
		Valid:         v.Valid,
		Bypassed:      v.Bypassed,
		ComponentID:   v.ComponentID,
		ComponentName: v.ComponentName,
		Message:       v.Message,
	}
	if v.ComponentID != "" {
		available, required := v.Available, v.Required
		out.Available = &available
		out.Required = &required
	}
	return out
}

// ToOrderValidationResponse convierte el veredicto agregado de un pedido al DTO HTTP.
func ToOrderValidationResponse(v bomstock.OrderVerdict) dto.OrderValidationResponse {
	out := dto.OrderValidationResponse{
		Valid:    v.Valid,
		Bypassed: v.Bypassed,
		Message:  v.Message(),
	}
	for _, e := range v.Errors {
		out.Errors = append(out.Errors, dto.LineErrorResponse{
			Index:       e.Index,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Quantity:    e.Quantity,
			Verdict:     ToVerdictResponse(e.Verdict),
		})
	}
	return out
}

// ToComponentResponses convierte componentes resueltos al DTO HTTP.
func ToComponentResponses(components []bom.Component) []dto.ComponentResponse {
	out := make([]dto.ComponentResponse, 0, len(components))
	for _, c := range components {
		out = append(out, dto.ComponentResponse{
			ProductID:   c.ComponentID,
			ProductName: c.ComponentName,
			Quantity:    c.Quantity,
			UOMID:       c.UOMID,
			UOMName:     c.UOMName,
		})
	}
	return out
}

func toOrderResponse(o *entity.Order, lines []*entity.OrderLine, names map[string]string, pickings []*entity.Picking) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:        o.ID,
		OutletID:  o.OutletID,
		Name:      o.Name,
		State:     o.State,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		Lines:     make([]dto.OrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			ProductName:   names[l.ProductID],
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Subtotal:      l.Subtotal,
			BOMDeductedAt: l.BOMDeductedAt,
		})
	}
	for _, p := range pickings {
		out.Pickings = append(out.Pickings, p.Name)
	}
	return out
}
