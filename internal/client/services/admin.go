package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tradeboard/internal/client/authz"
	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/session"
)

// ErrAccessDenied is returned before any request when the cached session is
// not staff.
var ErrAccessDenied = errors.New("access denied: admin or moderator role required")

type AdminService interface {
	Users(ctx context.Context) ([]models.UserPosts, error)
}

type adminService struct {
	client client.Client
	store  session.Store
}

func NewAdminService(c client.Client, store session.Store) AdminService {
	return &adminService{client: c, store: store}
}

func (s *adminService) Users(ctx context.Context) ([]models.UserPosts, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !authz.CanAdminister(sess) {
		return nil, ErrAccessDenied
	}
	return s.client.AdminUsers(ctx, sess.Credential)
}
