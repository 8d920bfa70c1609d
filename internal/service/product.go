package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/logger"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/storage"
	"storeadmin/internal/validate"
)

// ImageURLExpiry is the lifetime of presigned product image URLs.
const ImageURLExpiry = 15 * time.Minute

type ProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"max=100"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// ProductService manages the catalog and product images.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	// Visible is Get for storefront reads: archived products are ErrNotFound unless the viewer is an admin.
	Visible(ctx context.Context, id string, viewerIsAdmin bool) (*model.Product, error)
	List(ctx context.Context, f model.ProductFilter) (*model.Page[model.Product], error)
	Update(ctx context.Context, id string, in ProductInput) (*model.Product, error)
	Archive(ctx context.Context, id string, archived bool) (*model.Product, error)
	Delete(ctx context.Context, id string) error

	// UploadImage stores a new image and swaps it in. The previous object is removed
	// only after the row points at the new one; the new object is removed if the update fails.
	UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Product, error)
	ImageURL(ctx context.Context, id string, viewerIsAdmin bool) (string, error)
}

type productService struct {
	store    storage.Storage
	products repository.ProductRepository
	now      clock
}

func NewProductService(store storage.Storage, products repository.ProductRepository) ProductService {
	return &productService{store: store, products: products, now: utcNow}
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Description = strings.TrimSpace(in.Description)
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	return s.products.Create(ctx, &model.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *productService) Visible(ctx context.Context, id string, viewerIsAdmin bool) (*model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsArchived && !viewerIsAdmin {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, f model.ProductFilter) (*model.Page[model.Product], error) {
	pq := page(f.Limit, f.Offset)
	f.Limit, f.Offset = pq.Limit, pq.Offset
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	return s.products.List(ctx, f)
}

func (s *productService) Update(ctx context.Context, id string, in ProductInput) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	p, err := s.products.Update(ctx, &model.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *productService) Archive(ctx context.Context, id string, archived bool) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.products.SetArchived(ctx, id, archived); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}

// Delete removes a product that was never ordered, then its image.
func (s *productService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrInUse
		}
		return notFound(err)
	}
	if p.ImageKey != "" {
		if err := s.store.Delete(ctx, p.ImageKey); err != nil {
			logger.From(ctx).Warn("product image cleanup failed",
				zap.String("product_id", id), zap.String("key", p.ImageKey), zap.Error(err))
		}
	}
	return nil
}

func (s *productService) UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Product, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	ct, ext, err := storage.ProductImages.Check(filename, contentType, size)
	if err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.ProductImages.Key("", ext)
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: ct,
		Metadata:    map[string]string{"product-id": id},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.products.SetImage(ctx, id, key); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", notFound(err))
	}

	if current.ImageKey != "" {
		if err := s.store.Delete(ctx, current.ImageKey); err != nil {
			logger.From(ctx).Warn("previous product image cleanup failed",
				zap.String("product_id", id), zap.String("key", current.ImageKey), zap.Error(err))
		}
	}
	return s.Get(ctx, id)
}

func (s *productService) ImageURL(ctx context.Context, id string, viewerIsAdmin bool) (string, error) {
	p, err := s.Visible(ctx, id, viewerIsAdmin)
	if err != nil {
		return "", err
	}
	if p.ImageKey == "" {
		return "", ErrNotFound
	}
	return s.store.PresignGet(ctx, p.ImageKey, ImageURLExpiry)
}
