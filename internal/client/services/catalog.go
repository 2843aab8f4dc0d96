package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/logging"
)

// CategoryList is the category menu. Degraded is set when the backend was
// unreachable and the built-in fallback set is shown instead.
type CategoryList struct {
	Categories []models.Category
	Degraded   bool
}

type CatalogService interface {
	Categories(ctx context.Context) (CategoryList, error)
	Listings(ctx context.Context, category string) ([]models.Listing, error)
	Listing(ctx context.Context, category string, id int64) (models.Listing, error)
}

type catalogService struct {
	client client.Client
	log    logging.Logger
}

func NewCatalogService(c client.Client, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Discard()
	}
	return &catalogService{client: c, log: log}
}

func (s *catalogService) Categories(ctx context.Context) (CategoryList, error) {
	cats, err := s.client.Categories(ctx)
	if err != nil {
		var terr *client.TransportError
		if errors.As(err, &terr) {
			s.log.Warn(ctx, "categories unavailable, using fallback", "attempts", terr.Attempts, "error", terr.Err)
			return CategoryList{Categories: models.FallbackCategories(), Degraded: true}, nil
		}
		return CategoryList{}, err
	}
	return CategoryList{Categories: cats}, nil
}

func (s *catalogService) Listings(ctx context.Context, category string) ([]models.Listing, error) {
	return s.client.ListByCategory(ctx, category)
}

func (s *catalogService) Listing(ctx context.Context, category string, id int64) (models.Listing, error) {
	return s.client.GetByID(ctx, category, id)
}
