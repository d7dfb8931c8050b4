package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/smartshelf-api/internal/infrastructure/postgres"
)

func TestMigrateURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@db:5432/shop?sslmode=disable":   "pgx5://u:p@db:5432/shop?sslmode=disable",
		"postgresql://u:p@db:5432/shop?sslmode=require": "pgx5://u:p@db:5432/shop?sslmode=require",
		"pgx5://u@db/shop":                              "pgx5://u@db/shop",
	}
	for in, want := range cases {
		assert.Equal(t, want, postgres.MigrateURL(in), in)
	}
}
