package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/internal/application/dto"
	"github.com/jhoicas/smartshelf-api/internal/application/usecase"
	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/infrastructure/memory"
)

func TestSupplier_NombreUnico(t *testing.T) {
	uc := usecase.NewSupplierUseCase(memory.NewStore().Suppliers())
	ctx := context.Background()

	acme, err := uc.Create(ctx, dto.SupplierRequest{Name: "Acme", LeadTimeDays: "3-5 días"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.SupplierRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrSupplierNameExists)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "el duplicado no crea fila")

	campo, err := uc.Create(ctx, dto.SupplierRequest{Name: "Campo"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, campo.ID, dto.SupplierRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrSupplierNameExists, "renombrar a un nombre existente")

	same, err := uc.Update(ctx, acme.ID, dto.SupplierRequest{Name: "Acme", Phone: "555"})
	require.NoError(t, err, "conservar el propio nombre no es conflicto")
	assert.Equal(t, "555", same.Phone)
	assert.Empty(t, same.LeadTimeDays, "Update reemplaza todos los campos")
}

func TestSupplier_NoEncontradoYValidacion(t *testing.T) {
	uc := usecase.NewSupplierUseCase(memory.NewStore().Suppliers())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.SupplierRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "nope", dto.SupplierRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrSupplierNotFound)
}
