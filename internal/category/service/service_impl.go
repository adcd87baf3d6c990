package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
	"github.com/montluxe/storefront/internal/category/domain"
	productdomain "github.com/montluxe/storefront/internal/product/domain"
	"github.com/montluxe/storefront/internal/validation"
	"github.com/montluxe/storefront/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name, err := validation.NotBlank(req.Name, "name")
	if err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, category); err != nil {
		return nil, db.Classify(err, "category name")
	}

	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) GetOrCreate(ctx context.Context, name string) (*domain.Response, error) {
	trimmed, err := validation.NotBlank(name, "name")
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, s.db, trimmed)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		resp := toResponse(existing)
		return &resp, nil
	}

	category := &domain.Category{
		ID:        s.genID.Generate().Int64(),
		Name:      trimmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, category); err != nil {
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		// A concurrent caller won the insert race. Their row is the
		// authoritative one; discard ours and re-query.
		winner, ferr := s.repo.FindByName(ctx, s.db, trimmed)
		if ferr != nil {
			return nil, ferr
		}
		if winner == nil {
			return nil, apperr.Conflict("get-or-create category")
		}
		s.log.Debug("category insert lost race", zap.String("name", trimmed))
		resp := toResponse(winner)
		return &resp, nil
	}

	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	category, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("category")
	}

	resp := toResponse(category)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	category, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFound("category")
	}

	// Join rows go with the category; products themselves are untouched.
	return db.InTx(ctx, s.db, "delete category", func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&productdomain.ProductCategory{}).Error; err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func toResponse(c *domain.Category) domain.Response {
	return domain.Response{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
