package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xpyme/backoffice-api/internal/application/dto"
	"github.com/xpyme/backoffice-api/internal/application/inventory"
	"github.com/xpyme/backoffice-api/internal/application/usecase"
)

// ScanHandler resuelve las acciones del flujo de escaneo: sumar una unidad al
// producto del código leído, o indicar al cliente que el código no existe.
type ScanHandler struct {
	stock     *inventory.StockService
	productUC *usecase.ProductUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(stock *inventory.StockService, productUC *usecase.ProductUseCase) *ScanHandler {
	return &ScanHandler{stock: stock, productUC: productUC}
}

// scanActionRequest body para POST /api/scan.
type scanActionRequest struct {
	Code   string `json:"code"`
	Action string `json:"action"` // add_unit
}

// AddUnit godoc
// @Summary      Acción de escaneo
// @Description  Con action=add_unit suma una unidad al producto del código
// @Description  leído. Si el código no tiene producto asociado responde 404 y
// @Description  el cliente redirige al alta.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  scanActionRequest  true  "code y action"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) AddUnit(c *fiber.Ctx) error {
	var in scanActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Action != "add_unit" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "acción no soportada"})
	}
	product, err := h.productUC.GetByCode(in.Code)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código sin producto asociado"})
	}
	actor := GetUserID(c)
	ip := ClientIP(c)
	res, err := h.stock.DepositOne(c.Context(), product.ID, strPtr(actor), strPtr(ip))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		Movement:    dto.ToMovementResponse(res.Movement),
		NewBalance:  res.NewBalance,
		ZeroWarning: res.ZeroWarning,
	})
}
