package service

import (
	"testing"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	t.Parallel()

	admin := domain.Principal{ID: 1, Role: domain.RoleAdmin}
	customer := domain.Principal{ID: 100, Role: domain.RoleCustomer}

	assert.NoError(t, RequireRole(admin, domain.RoleAdmin, domain.RoleManager))
	assert.NoError(t, RequireRole(customer, domain.RoleCustomer))

	err := RequireRole(customer, domain.RoleAdmin, domain.RoleManager)
	require.Error(t, err)
	assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))

	err = RequireRole(admin)
	require.Error(t, err)
	assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
}

func TestRequireOwnerOrRole(t *testing.T) {
	t.Parallel()

	owner := domain.Principal{ID: 100, Role: domain.RoleCustomer}
	stranger := domain.Principal{ID: 200, Role: domain.RoleCustomer}
	manager := domain.Principal{ID: 2, Role: domain.RoleManager}

	assert.NoError(t, RequireOwnerOrRole(owner, 100, domain.RoleAdmin, domain.RoleManager))
	assert.NoError(t, RequireOwnerOrRole(manager, 100, domain.RoleAdmin, domain.RoleManager))

	err := RequireOwnerOrRole(stranger, 100, domain.RoleAdmin, domain.RoleManager)
	require.Error(t, err)
	assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
}
