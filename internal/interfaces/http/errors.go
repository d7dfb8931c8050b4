package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/domain"
)

// LocalError guarda en Locals el error de un 5xx para que el logger de requests lo registre.
const LocalError = "request_error"

// errorMapping asocia un error de dominio con su status HTTP y código.
type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden importa: se usa el primer errors.Is que coincida.
var errorMappings = []errorMapping{
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrSupplierNotFound, fiber.StatusNotFound, "SUPPLIER_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusBadRequest, "USER_NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrSupplierNameExists, fiber.StatusConflict, "SUPPLIER_EXISTS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_TRANSITION"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrWeakPassword, fiber.StatusBadRequest, "WEAK_PASSWORD"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
}

// respondError traduce err a dto.ErrorResponse. Errores no mapeados → 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	c.Locals(LocalError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// respondUnknownProductAsBadRequest: en POST /sales y POST /pos un producto inexistente es un dato inválido del body (400).
func respondUnknownProductAsBadRequest(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: err.Error()})
	}
	return respondError(c, err)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
