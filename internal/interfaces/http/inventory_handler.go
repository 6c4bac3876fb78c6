package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xpyme/backoffice-api/internal/application/dto"
	"github.com/xpyme/backoffice-api/internal/application/inventory"
	"github.com/xpyme/backoffice-api/internal/application/usecase"
)

// InventoryHandler maneja los movimientos de stock (protegido).
type InventoryHandler struct {
	stock     *inventory.StockService
	productUC *usecase.ProductUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockService, productUC *usecase.ProductUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, productUC: productUC}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  deposit suma, withdraw resta (sin piso: puede dejar saldo
// @Description  negativo, comportamiento heredado), adjust aplica el signo que
// @Description  indique el caller. Cantidad siempre positiva.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ApplyMovementRequest  true  "action, quantity, negative (adjust), reason"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := GetUserID(c)
	ip := ClientIP(c)
	res, err := h.stock.ApplyMovement(c.Context(), inventory.MovementRequest{
		ProductID: c.Params("id"),
		Action:    in.Action,
		Quantity:  in.Quantity,
		Negative:  in.Negative,
		Reason:    in.Reason,
		UserID:    strPtr(actor),
		IP:        strPtr(ip),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		Movement:    dto.ToMovementResponse(res.Movement),
		NewBalance:  res.NewBalance,
		ZeroWarning: res.ZeroWarning,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	movements, err := h.productUC.ListMovements(c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := &dto.MovementListResponse{Total: len(movements)}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}
