package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/sales"
)

// SaleHandler registra ventas y expone el reporte de ventas.
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "productId, quantitySold"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordSale(c.UserContext(), in)
	if err != nil {
		return respondUnknownProductAsBadRequest(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de ventas
// @Description  Sin fechas devuelve todas las ventas. Con fechas, incluye ambos días completos.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/report [get]
func (h *SaleHandler) Report(c *fiber.Ctx) error {
	in := dto.SalesReportRequest{StartDate: c.Query("startDate"), EndDate: c.Query("endDate")}
	out, err := h.uc.Report(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/report/pdf [get]
func (h *SaleHandler) ReportPDF(c *fiber.Ctx) error {
	in := dto.SalesReportRequest{StartDate: c.Query("startDate"), EndDate: c.Query("endDate")}
	out, err := h.uc.ReportPDF(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales-report.pdf"`)
	return c.Send(out)
}
