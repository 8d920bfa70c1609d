// Package seed loads a YAML catalog of users, products and promotions into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"storeadmin/internal/auth"
	"storeadmin/internal/model"
	"storeadmin/internal/repository"
	"storeadmin/internal/service"
)

// Catalog is the fixture file layout.
type Catalog struct {
	Users      []User      `yaml:"users"`
	Products   []Product   `yaml:"products"`
	Promotions []Promotion `yaml:"promotions"`
}

type User struct {
	Email    string         `yaml:"email"`
	Name     string         `yaml:"name"`
	Password string         `yaml:"password"`
	Role     model.UserRole `yaml:"role"`
}

type Product struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	PriceCents  int64  `yaml:"price_cents"`
	Stock       int    `yaml:"stock"`
}

type Promotion struct {
	Code          string             `yaml:"code"`
	Description   string             `yaml:"description"`
	DiscountType  model.DiscountType `yaml:"discount_type"`
	DiscountValue int64              `yaml:"discount_value"`
	MinOrderCents int64              `yaml:"min_order_cents"`
	MaxUses       int                `yaml:"max_uses"`
	StartsAt      time.Time          `yaml:"starts_at"`
	EndsAt        time.Time          `yaml:"ends_at"`
}

// Result counts what Apply created and skipped.
type Result struct {
	Created int
	Skipped int
}

// Load decodes a catalog. Unknown keys are rejected so typos surface early.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, u := range c.Users {
		if u.Role == "" {
			c.Users[i].Role = model.UserRoleCustomer
		} else if !u.Role.Valid() {
			return nil, fmt.Errorf("users[%d]: unknown role %q", i, u.Role)
		}
	}
	return &c, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Seeder writes a catalog. Records that already exist are skipped, so Apply can be re-run.
type Seeder struct {
	users      repository.UserRepository
	products   service.ProductService
	promotions service.PromotionService
	hash       func(string) (string, error)
	log        *zap.Logger
}

func NewSeeder(users repository.UserRepository, products service.ProductService, promotions service.PromotionService, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		users:      users,
		products:   products,
		promotions: promotions,
		hash:       auth.HashPassword,
		log:        log.With(zap.String("component", "seed")),
	}
}

// Apply creates users, then products, then promotions.
func (s *Seeder) Apply(ctx context.Context, c *Catalog) (Result, error) {
	var res Result
	for _, u := range c.Users {
		created, err := s.user(ctx, u)
		if err != nil {
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		}
		res.add(created)
	}
	for _, p := range c.Products {
		created, err := s.product(ctx, p)
		if err != nil {
			return res, fmt.Errorf("product %s: %w", p.Name, err)
		}
		res.add(created)
	}
	for _, p := range c.Promotions {
		created, err := s.promotion(ctx, p)
		if err != nil {
			return res, fmt.Errorf("promotion %s: %w", p.Code, err)
		}
		res.add(created)
	}
	s.log.Info("catalog applied", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}

func (r *Result) add(created bool) {
	if created {
		r.Created++
	} else {
		r.Skipped++
	}
}

func (s *Seeder) user(ctx context.Context, u User) (bool, error) {
	if u.Password == "" {
		return false, errors.New("password is required")
	}
	hash, err := s.hash(u.Password)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Name:         u.Name,
		PasswordHash: hash,
		Role:         u.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return false, nil
	}
	return err == nil, err
}

func (s *Seeder) product(ctx context.Context, p Product) (bool, error) {
	existing, err := s.products.List(ctx, model.ProductFilter{Search: p.Name, IncludeArchived: true, Limit: 100})
	if err != nil {
		return false, err
	}
	for _, e := range existing.Items {
		if strings.EqualFold(e.Name, strings.TrimSpace(p.Name)) {
			return false, nil
		}
	}
	_, err = s.products.Create(ctx, service.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
	})
	return err == nil, err
}

func (s *Seeder) promotion(ctx context.Context, p Promotion) (bool, error) {
	_, err := s.promotions.Create(ctx, service.PromotionInput{
		Code:          p.Code,
		Description:   p.Description,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		MinOrderCents: p.MinOrderCents,
		MaxUses:       p.MaxUses,
		StartsAt:      p.StartsAt,
		EndsAt:        p.EndsAt,
	})
	if errors.Is(err, service.ErrPromotionTaken) {
		return false, nil
	}
	return err == nil, err
}
