package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/identity/mocks"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/store/memory"
)

var now = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *mocks.Provider, *memory.Store) {
	ctx := context.Background()
	idp := mocks.NewProvider(t)
	s := memory.NewStore()

	for uid, role := range map[string]models.Role{"super": models.RoleSuperAdmin, "admin": models.RoleAdmin} {
		_, err := s.Create(ctx, models.AdminsCollection, uid, models.AdminRecord{UID: uid, Role: role})
		require.NoError(t, err)
	}

	svc := NewService(logger.FromContext, idp, s)
	svc.now = func() time.Time { return now }

	return svc, idp, s
}

func TestService_CreateAdmin(t *testing.T) {
	ctx := context.Background()
	svc, idp, s := newService(t)

	idp.On("CreateUser", ctx, "new@example.com", "s3cret!", "New Admin").Return("new-uid", nil).Once()

	uid, err := svc.CreateAdmin(ctx, "super", &CreateAdminRequest{
		Email:    "new@example.com",
		Password: "s3cret!",
		Name:     "New Admin",
		Role:     "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-uid", uid)

	var a models.AdminRecord
	found, err := s.Get(ctx, models.AdminsCollection, "new-uid", &a)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new-uid", a.UID)
	assert.Equal(t, "New Admin", a.Name)
	assert.Equal(t, "new@example.com", a.Email)
	assert.Equal(t, models.RoleAdmin, a.Role)
	assert.Equal(t, "super", a.CreatedBy)
	assert.True(t, now.Equal(a.CreatedAt))
}

func TestService_CreateAdmin_Rejected(t *testing.T) {
	full := &CreateAdminRequest{Email: "x@example.com", Password: "p", Name: "X", Role: "Admin"}

	tests := []struct {
		name   string
		caller string
		req    *CreateAdminRequest
		want   error
	}{
		{name: "admin caller", caller: "admin", req: full, want: apperr.ErrPermissionDenied},
		{name: "caller without record", caller: "stranger", req: full, want: apperr.ErrPermissionDenied},
		{name: "missing password", caller: "super", req: &CreateAdminRequest{Email: "x@example.com", Name: "X", Role: "Admin"}, want: apperr.ErrInvalidArgument},
		{name: "unknown role", caller: "super", req: &CreateAdminRequest{Email: "x@example.com", Password: "p", Name: "X", Role: "Owner"}, want: apperr.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, idp, s := newService(t)

			_, err := svc.CreateAdmin(context.Background(), tt.caller, tt.req)

			assert.ErrorIs(t, err, tt.want)
			idp.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			assert.Len(t, s.IDs(models.AdminsCollection), 2)
		})
	}
}

func TestService_DeleteAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("super admin", func(t *testing.T) {
		svc, idp, s := newService(t)
		idp.On("DeleteUser", ctx, "admin").Return(nil).Once()

		require.NoError(t, svc.DeleteAdmin(ctx, "super", "admin"))

		found, err := s.Get(ctx, models.AdminsCollection, "admin", &models.AdminRecord{})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		svc, idp, s := newService(t)

		err := svc.DeleteAdmin(ctx, "admin", "super")

		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
		assert.Equal(t, "Forbidden: Only Super Admin can delete admins", err.Error())
		idp.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
		assert.Len(t, s.IDs(models.AdminsCollection), 2)
	})

	t.Run("missing uid", func(t *testing.T) {
		svc, idp, _ := newService(t)

		assert.ErrorIs(t, svc.DeleteAdmin(ctx, "super", ""), apperr.ErrInvalidArgument)
		idp.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("identity provider failure keeps the document", func(t *testing.T) {
		svc, idp, s := newService(t)
		idp.On("DeleteUser", ctx, "admin").Return(errors.New("no user record")).Once()

		assert.Error(t, svc.DeleteAdmin(ctx, "super", "admin"))

		found, err := s.Get(ctx, models.AdminsCollection, "admin", &models.AdminRecord{})
		require.NoError(t, err)
		assert.True(t, found)
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	for _, caller := range []string{"admin", "super"} {
		t.Run(caller, func(t *testing.T) {
			svc, idp, s := newService(t)
			_, err := s.Create(ctx, models.UsersCollection, "app-user", map[string]any{"name": "Ali"})
			require.NoError(t, err)

			idp.On("DeleteUser", ctx, "app-user").Return(nil).Once()

			require.NoError(t, svc.DeleteUser(ctx, caller, "app-user"))
			assert.Empty(t, s.IDs(models.UsersCollection))
		})
	}

	t.Run("no admin record", func(t *testing.T) {
		svc, idp, _ := newService(t)

		err := svc.DeleteUser(ctx, "app-user", "someone")

		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
		idp.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})
}
