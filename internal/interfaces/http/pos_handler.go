package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/dto"
	"github.com/jhoicas/pos-bom/internal/application/pos"
	"github.com/shopspring/decimal"
)

// POSHandler rutas de la sesión de caja: catálogo, disponibilidad, pedidos y recibos.
type POSHandler struct {
	session  *pos.SessionUseCase
	submit   *pos.SubmitOrderUseCase
	executor *bomstock.DeductionExecutor
	receipt  *pos.ReceiptUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(session *pos.SessionUseCase, submit *pos.SubmitOrderUseCase, executor *bomstock.DeductionExecutor, receipt *pos.ReceiptUseCase) *POSHandler {
	return &POSHandler{session: session, submit: submit, executor: executor, receipt: receipt}
}

// LoadProducts godoc
// @Summary      Catálogo del punto de venta
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        outletId  path   string  true   "ID del punto de venta"
// @Param        limit     query  int     false  "Límite"
// @Param        offset    query  int     false  "Offset"
// @Success      200  {object}  dto.POSProductListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/outlets/{outletId}/products [get]
func (h *POSHandler) LoadProducts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	out, err := h.session.LoadProducts(c.UserContext(), companyID, c.Params("outletId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Components godoc
// @Summary      Componentes por unidad de un producto
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ComponentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/products/{id}/components [get]
func (h *POSHandler) Components(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.session.Components(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CheckAvailability godoc
// @Summary      Verificar disponibilidad al agregar al carrito
// @Description  Consultiva: la respuesta siempre es 200 y el veredicto indica si hay stock de componentes.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "outlet_id, product_id, quantity"
// @Success      200   {object}  dto.VerdictResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/availability [post]
func (h *POSHandler) CheckAvailability(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity.IsZero() {
		in.Quantity = decimal.NewFromInt(1)
	}
	verdict := h.session.CheckAvailability(c.UserContext(), companyID, in.OutletID, in.ProductID, in.Quantity)
	return c.JSON(pos.ToVerdictResponse(verdict))
}

// ValidateOrder godoc
// @Summary      Validación BOM previa al pago
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "outlet_id, lines"
// @Success      200   {object}  dto.OrderValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/orders/validate [post]
func (h *POSHandler) ValidateOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	verdict := h.submit.Validate(c.UserContext(), companyID, in)
	return c.JSON(pos.ToOrderValidationResponse(verdict))
}

// SubmitOrder godoc
// @Summary      Confirmar pedido pagado
// @Description  Valida el stock de componentes y descuenta todas las líneas en una sola transacción.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "outlet_id, lines"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.OrderValidationResponse
// @Router       /api/pos/orders [post]
func (h *POSHandler) SubmitOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.submit.Submit(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeductLine godoc
// @Summary      Descontar componentes de una línea pagada
// @Description  Reintento manual del descuento BOM. Las líneas ya descontadas o sin BOM no generan movimientos.
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del pedido"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pos/orders/{id}/lines/{lineId}/deduct [post]
func (h *POSHandler) DeductLine(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.executor.Deduct(c.UserContext(), companyID, c.Params("id"), c.Params("lineId"), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "componentes descontados"})
}

// Receipt godoc
// @Summary      Recibo del pedido en PDF
// @Tags         pos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/orders/{id}/receipt [get]
func (h *POSHandler) Receipt(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	doc, name, err := h.receipt.PDF(c.UserContext(), companyID, c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+receiptFilename(name)+`.pdf"`)
	return c.Send(doc)
}

func receiptFilename(orderName string) string {
	out := make([]rune, 0, len(orderName))
	for _, r := range orderName {
		switch r {
		case '/', '\\', '"', ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
