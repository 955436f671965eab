package catalog

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"golang.org/x/sync/singleflight"
)

const cacheOpTimeout = time.Second

type Service struct {
	repo  RepoInterface
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo RepoInterface, cache ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// ListProducts returns the full catalog, served from cache when possible.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do(productsKey, func() (interface{}, error) {

		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		products, errList := s.repo.ListProducts(ctx)
		if errList != nil {
			return nil, errList
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), products)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

// GetProduct always reads through to the repository; stock bounds in the
// checkout flow must see the freshest value, not a cached list.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// Search filters the catalog by a case-insensitive match on name or
// category. An empty term returns the whole catalog.
func (s *Service) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(products, term), nil
}

// Filter is the pure product picker filter: it selects products whose name
// or category contains term, ignoring case.
func Filter(products []*domain.Product, term string) []*domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}

	var matched []*domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) error {
	if err := s.repo.AdjustStock(ctx, id, delta); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *Service) invalidateCache() {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
