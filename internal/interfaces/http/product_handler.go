package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xpyme/backoffice-api/internal/application/dto"
	"github.com/xpyme/backoffice-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  Alta de producto. Para tipos distintos a Servicio la cantidad
// @Description  inicial es obligatoria; si es mayor que cero se registra el
// @Description  movimiento IN inicial en la misma transacción.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El flujo de escaneo pre-carga el código leído.
	if code := c.Query("code"); code != "" && in.Code == nil {
		in.Code = &code
	}
	actor := GetUserID(c)
	ip := ClientIP(c)
	out, err := h.uc.Create(c.Context(), in, strPtr(actor), strPtr(ip))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductProjection(out, GetRole(c)))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.ProductProjection(out, GetRole(c)))
}

// Search godoc
// @Summary      Buscar productos
// @Description  Búsqueda por subcadena (insensible a mayúsculas y acentos) en
// @Description  nombre, SKU, SKU de proveedor, código y palabras clave.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Término de búsqueda (vacío lista todo)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
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
	products, err := h.uc.Search(c.Query("q"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	role := GetRole(c)
	out := &dto.ProductListResponse{Total: len(products)}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductProjection(p, role))
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Buscar producto por código escaneado
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code  query  string  true  "Código QR o de barras"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/scan [get]
func (h *ProductHandler) Scan(c *fiber.Ctx) error {
	code := c.Query("code")
	out, err := h.uc.GetByCode(code)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		// Código desconocido: el cliente redirige al alta con el código pre-cargado.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código sin producto asociado"})
	}
	return c.JSON(dto.ProductProjection(out, GetRole(c)))
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Campos descriptivos, estado y precios. El stock nunca se
// @Description  modifica por esta vía: solo mediante movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := GetUserID(c)
	out, err := h.uc.Update(id, in, strPtr(actor))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductProjection(out, GetRole(c)))
}

// VerifyBalance godoc
// @Summary      Verificar saldo contra el ledger
// @Description  Recalcula el saldo desde el log completo de movimientos y lo
// @Description  compara con el cacheado (detección de drift).
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/verify [get]
func (h *ProductHandler) VerifyBalance(c *fiber.Ctx) error {
	cached, recomputed, err := h.uc.VerifyBalance(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"cached_balance":     cached,
		"recomputed_balance": recomputed,
		"consistent":         cached == recomputed,
	})
}

// RegisterImage godoc
// @Summary      Registrar referencia de imagen
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RegisterImageRequest  true  "Referencia"
// @Success      201   {object}  dto.ImageResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [post]
func (h *ProductHandler) RegisterImage(c *fiber.Ctx) error {
	var in dto.RegisterImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterImage(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToImageResponse(out))
}

// ListImages godoc
// @Summary      Listar imágenes de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.ImageResponse
// @Router       /api/products/{id}/images [get]
func (h *ProductHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.uc.ListImages(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, dto.ToImageResponse(img))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (solo admin)
// @Description  Borrado físico; los movimientos caen por cascada. El flujo
// @Description  normal es marcar el estado como Desechado.
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
