package inventory

import "github.com/jhoicas/smartshelf-api/internal/domain"

// ApplyDelta implementa la regla de mutación de inventario (servicio de dominio).
// NuevaCantidad = CantidadActual + delta; se rechaza si el resultado queda negativo.
// Deltas positivos (recepción de mercancía) siempre se aceptan.
func ApplyDelta(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}
