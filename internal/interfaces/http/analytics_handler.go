package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartshelf-api/internal/application/analytics"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
)

// AnalyticsHandler expone el reporte de analítica y el pronóstico de demanda.
type AnalyticsHandler struct {
	reportUC   *analytics.ReportUseCase
	forecastUC *inventory.ForecastUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(reportUC *analytics.ReportUseCase, forecastUC *inventory.ForecastUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{reportUC: reportUC, forecastUC: forecastUC}
}

// GetAnalytics godoc
// @Summary      Ventas vs compras por mes, top productos y costo por proveedor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalyticsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	out, err := h.reportUC.GetReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetForecast godoc
// @Summary      Pronóstico de demanda por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ForecastItemDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecast [get]
func (h *AnalyticsHandler) GetForecast(c *fiber.Ctx) error {
	out, err := h.forecastUC.Forecast(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
