package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ProductLogHandler maneja los movimientos de producto: lotes de recepción/entrega, estados,
// consultas, estadísticas y documentos (protegido).
type ProductLogHandler struct {
	movements *inventory.MovementUseCase
	stats     *inventory.StatsUseCase
	docs      *inventory.DocumentUseCase
	errs      errorResponder
}

// NewProductLogHandler construye el handler.
func NewProductLogHandler(movements *inventory.MovementUseCase, stats *inventory.StatsUseCase, docs *inventory.DocumentUseCase, errs errorResponder) *ProductLogHandler {
	return &ProductLogHandler{movements: movements, stats: stats, docs: docs, errs: errs}
}

// CreateReceipt godoc
// @Summary      Crear lote de recepción
// @Description  Todas las líneas comparten la referencia <bodega>/IN/<id de la primera línea> y nacen en Draft.
// @Tags         product-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Lote de recepción"
// @Success      201   {array}   dto.ProductLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/product-logs/receipt [post]
func (h *ProductLogHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.CreateReceipt(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateDelivery godoc
// @Summary      Crear lote de entrega
// @Tags         product-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Lote de entrega"
// @Success      201   {array}   dto.ProductLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/product-logs/delivery [post]
func (h *ProductLogHandler) CreateDelivery(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.CreateDelivery(c.UserContext(), GetUsername(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdvanceReceiptStatus godoc
// @Summary      Avanzar estado de una recepción (Draft → Ready → Done)
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "Referencia URL-encoded (WH%2FIN%2F0001)"
// @Success      200  {array}   dto.ProductLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/product-logs/receipt/{ref}/status [put]
func (h *ProductLogHandler) AdvanceReceiptStatus(c *fiber.Ctx) error {
	ref, err := paramText(c, "ref")
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.movements.AdvanceReceiptStatus(c.UserContext(), ref)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// AdvanceDeliveryStatus godoc
// @Summary      Avanzar estado de una entrega (Draft → Waiting → Ready → Done)
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "Referencia URL-encoded (WH%2FOUT%2F0001)"
// @Success      200  {array}   dto.ProductLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/product-logs/delivery/{ref}/status [put]
func (h *ProductLogHandler) AdvanceDeliveryStatus(c *fiber.Ctx) error {
	ref, err := paramText(c, "ref")
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.movements.AdvanceDeliveryStatus(c.UserContext(), ref)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ReceiptStats godoc
// @Summary      Recepciones en Ready: total y atrasadas
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementStatsResponse
// @Router       /api/product-logs/stats/receipt [get]
func (h *ProductLogHandler) ReceiptStats(c *fiber.Ctx) error {
	out, err := h.stats.ReceiptStats(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// DeliveryStats godoc
// @Summary      Entregas en Ready: total y atrasadas
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementStatsResponse
// @Router       /api/product-logs/stats/delivery [get]
func (h *ProductLogHandler) DeliveryStats(c *fiber.Ctx) error {
	out, err := h.stats.DeliveryStats(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// List devuelve un handler que lista los movimientos de la clase indicada.
func (h *ProductLogHandler) List(class repository.LogClass) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.movements.ListProductLogs(c.UserContext(), class)
		if err != nil {
			return h.errs.respond(c, err)
		}
		return c.JSON(out)
	}
}

// ListWithProductName igual que List pero con el nombre del producto en cada fila.
func (h *ProductLogHandler) ListWithProductName(class repository.LogClass) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.movements.ListProductLogsWithName(c.UserContext(), class)
		if err != nil {
			return h.errs.respond(c, err)
		}
		return c.JSON(out)
	}
}

// ListByReference godoc
// @Summary      Líneas de un lote
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "Referencia URL-encoded"
// @Success      200  {array}   dto.ProductLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-logs/reference/{ref} [get]
func (h *ProductLogHandler) ListByReference(c *fiber.Ctx) error {
	ref, err := paramText(c, "ref")
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.movements.ListByReference(c.UserContext(), ref)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ReferencePDF godoc
// @Summary      Comprobante PDF de un lote
// @Tags         product-logs
// @Security     Bearer
// @Produce      application/pdf
// @Param        ref  path  string  true  "Referencia URL-encoded"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-logs/reference/{ref}/pdf [get]
func (h *ProductLogHandler) ReferencePDF(c *fiber.Ctx) error {
	ref, err := paramText(c, "ref")
	if err != nil {
		return h.errs.respond(c, err)
	}
	data, filename, err := h.docs.MovementSlipPDF(c.UserContext(), ref)
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// Export godoc
// @Summary      Exportar historial de movimientos (XLSX)
// @Tags         product-logs
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/product-logs/export [get]
func (h *ProductLogHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.docs.ExportHistoryXLSX(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(data)
}

// ListByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {array}  dto.ProductLogResponse
// @Router       /api/product-logs/product/{product_id} [get]
func (h *ProductLogHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product_id")
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.movements.ListByProduct(c.UserContext(), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Movimientos en un estado
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Param        status  path  string  true  "Draft | Waiting | Ready | Done"
// @Success      200  {array}   dto.ProductLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product-logs/status/{status} [get]
func (h *ProductLogHandler) ListByStatus(c *fiber.Ctx) error {
	out, err := h.movements.ListByStatus(c.UserContext(), c.Params("status"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear movimiento individual
// @Tags         product-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductLogRequest  true  "Movimiento"
// @Success      201   {object}  dto.ProductLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/product-logs [post]
func (h *ProductLogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.CreateProductLog(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         product-logs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.ProductLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-logs/{id} [get]
func (h *ProductLogHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.movements.GetProductLog(c.UserContext(), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento
// @Tags         product-logs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del movimiento"
// @Param        body  body  dto.UpdateProductLogRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/product-logs/{id} [put]
func (h *ProductLogHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.respond(c, err)
	}
	var in dto.UpdateProductLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.UpdateProductLog(c.UserContext(), id, in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         product-logs
// @Security     Bearer
// @Param        id   path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product-logs/{id} [delete]
func (h *ProductLogHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.respond(c, err)
	}
	if err := h.movements.DeleteProductLog(c.UserContext(), id); err != nil {
		return h.errs.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
