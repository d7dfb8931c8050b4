package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartshelf-api/internal/domain"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

var allStatuses = []entity.OrderStatus{
	entity.OrderStatusPending,
	entity.OrderStatusApproved,
	entity.OrderStatusOrdered,
	entity.OrderStatusReceived,
}

func TestPurchaseOrder_Approve_SoloDesdePending(t *testing.T) {
	now := time.Now()
	for _, st := range allStatuses {
		po := &entity.PurchaseOrder{Status: st}
		err := po.Approve(now)
		if st == entity.OrderStatusPending {
			require.NoError(t, err)
			assert.Equal(t, entity.OrderStatusApproved, po.Status)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "approve desde %s", st)
		assert.Equal(t, st, po.Status, "el estado no debe cambiar si la transición falla")
	}
}

func TestPurchaseOrder_MarkReceived_DesdeApprovedUOrdered(t *testing.T) {
	now := time.Now()
	for _, st := range allStatuses {
		po := &entity.PurchaseOrder{Status: st}
		err := po.MarkReceived(now)
		if st == entity.OrderStatusApproved || st == entity.OrderStatusOrdered {
			require.NoError(t, err)
			assert.Equal(t, entity.OrderStatusReceived, po.Status)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "receive desde %s", st)
		assert.Equal(t, st, po.Status)
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, st := range allStatuses {
		assert.True(t, st.Valid())
	}
	assert.False(t, entity.OrderStatus("CANCELLED").Valid())
}

func TestParseRole_FallbackAUser(t *testing.T) {
	cases := map[string]struct {
		role string
		ok   bool
	}{
		"admin":          {entity.RoleAdmin, true},
		" Store_Manager": {entity.RoleStoreManager, true},
		"USER":           {entity.RoleUser, true},
		"":               {entity.RoleUser, false},
		"superuser":      {entity.RoleUser, false},
	}
	for in, want := range cases {
		role, ok := entity.ParseRole(in)
		assert.Equal(t, want.role, role, "entrada %q", in)
		assert.Equal(t, want.ok, ok, "entrada %q", in)
	}
}
