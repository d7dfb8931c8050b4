package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("orden de compra no encontrada")
	ErrSupplierNotFound   = errors.New("proveedor no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrSupplierNameExists = errors.New("ya existe un proveedor con ese nombre")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrWeakPassword       = errors.New("la nueva contraseña debe tener al menos 6 caracteres")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)
