package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/farellandr/melaka-tickets/internal/apperr"
	"github.com/farellandr/melaka-tickets/internal/authz"
	"github.com/farellandr/melaka-tickets/internal/identity"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/models"
	"github.com/farellandr/melaka-tickets/internal/store"
)

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Service removes or creates accounts in two independent steps: the identity provider first,
// then the document store. A failure of the second step is not compensated.
type Service struct {
	l        logger.Provider
	identity identity.Provider
	store    store.Store
	authz    *authz.Authorizer
	now      func() time.Time
}

func NewService(l logger.Provider, idp identity.Provider, s store.Store) *Service {
	return &Service{
		l:        l,
		identity: idp,
		store:    s,
		authz:    authz.NewAuthorizer(s),
		now:      time.Now,
	}
}

func (s *Service) CreateAdmin(ctx context.Context, callerUID string, req *CreateAdminRequest) (string, error) {
	if _, err := s.authz.Authorize(ctx, callerUID, authz.CreateAdmin); err != nil {
		return "", err
	}

	if blank(req.Email) || blank(req.Password) || blank(req.Name) || blank(req.Role) {
		return "", apperr.New(apperr.ErrInvalidArgument, "Missing fields")
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrInvalidArgument, err, "Invalid role")
	}

	uid, err := s.identity.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return "", err
	}

	admin := &models.AdminRecord{
		UID:       uid,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedBy: callerUID,
		CreatedAt: s.now().UTC(),
	}

	if _, err := s.store.Create(ctx, models.AdminsCollection, uid, admin); err != nil {
		return "", err
	}

	s.l(ctx).Infof("admin %s (%s) created by %s", uid, role, callerUID)

	return uid, nil
}

func (s *Service) DeleteAdmin(ctx context.Context, callerUID, uid string) error {
	if _, err := s.authz.Authorize(ctx, callerUID, authz.DeleteAdmin); err != nil {
		return err
	}

	if blank(uid) {
		return apperr.New(apperr.ErrInvalidArgument, "Bad Request: Missing uid in body")
	}

	return s.deleteAccount(ctx, models.AdminsCollection, uid)
}

func (s *Service) DeleteUser(ctx context.Context, callerUID, uid string) error {
	if _, err := s.authz.Authorize(ctx, callerUID, authz.DeleteUser); err != nil {
		return err
	}

	if blank(uid) {
		return apperr.New(apperr.ErrInvalidArgument, "Bad Request: Missing uid in body")
	}

	return s.deleteAccount(ctx, models.UsersCollection, uid)
}

func (s *Service) deleteAccount(ctx context.Context, collection, uid string) error {
	l := s.l(ctx)

	if err := s.identity.DeleteUser(ctx, uid); err != nil {
		return err
	}

	l.Infof("deleted %s from the identity provider", uid)

	if err := s.store.Delete(ctx, collection, uid); err != nil {
		return err
	}

	l.Infof("deleted %s/%s", collection, uid)

	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
