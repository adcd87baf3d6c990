package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
	categorydomain "github.com/montluxe/storefront/internal/category/domain"
	"github.com/montluxe/storefront/internal/product/domain"
	"github.com/montluxe/storefront/internal/validation"
	"github.com/montluxe/storefront/pkg/db"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       domain.Repository
	Categories categorydomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	categories categorydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("product.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		categories: p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	// All field validators run before anything is staged; a single failure
	// means no instance exists at all.
	name, err := validation.NotBlank(req.Name, "name")
	if err != nil {
		return nil, err
	}
	description, err := validation.NotBlank(req.Description, "description")
	if err != nil {
		return nil, err
	}
	imageURL, err := validation.NotBlank(req.ImageURL, "image_url")
	if err != nil {
		return nil, err
	}
	imageAlt, err := validation.NotBlank(req.ImageAlt, "image_alt")
	if err != nil {
		return nil, err
	}
	priceCents, err := validation.DollarToMinorUnits(req.Price, "price")
	if err != nil {
		return nil, err
	}
	if err := validation.NonNegativeInt(req.ItemQuantity, "item_quantity"); err != nil {
		return nil, err
	}

	// Categories are shared reference data; resolving them is idempotent and
	// safe to do outside the product's unit of work.
	categoryIDs := make([]int64, 0, len(req.CategoryNames))
	for _, categoryName := range req.CategoryNames {
		category, err := s.categories.GetOrCreate(ctx, categoryName)
		if err != nil {
			return nil, err
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:           s.genID.Generate().Int64(),
		Name:         name,
		Description:  description,
		PriceCents:   priceCents,
		ItemQuantity: req.ItemQuantity,
		ImageURL:     imageURL,
		ImageAlt:     imageAlt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = db.InTx(ctx, s.db, "create product", func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, product); err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			link := &domain.ProductCategory{
				ID:         s.genID.Generate().Int64(),
				ProductID:  product.ID,
				CategoryID: categoryID,
			}
			if err := s.repo.InsertLink(ctx, tx, link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("product creation rolled back",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	return s.toResponse(ctx, product)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product")
	}
	return s.toResponse(ctx, product)
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		item, err := s.toResponse(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *item)
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	product, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product")
	}

	// Setters re-run the same validators the constructor ran.
	if req.Name != nil {
		name, err := validation.NotBlank(*req.Name, "name")
		if err != nil {
			return nil, err
		}
		product.Name = name
	}
	if req.Description != nil {
		description, err := validation.NotBlank(*req.Description, "description")
		if err != nil {
			return nil, err
		}
		product.Description = description
	}
	if req.Price != nil {
		priceCents, err := validation.DollarToMinorUnits(*req.Price, "price")
		if err != nil {
			return nil, err
		}
		product.PriceCents = priceCents
	}
	if req.ItemQuantity != nil {
		if err := validation.NonNegativeInt(*req.ItemQuantity, "item_quantity"); err != nil {
			return nil, err
		}
		product.ItemQuantity = *req.ItemQuantity
	}
	if req.ImageURL != nil {
		imageURL, err := validation.NotBlank(*req.ImageURL, "image_url")
		if err != nil {
			return nil, err
		}
		product.ImageURL = imageURL
	}
	if req.ImageAlt != nil {
		imageAlt, err := validation.NotBlank(*req.ImageAlt, "image_alt")
		if err != nil {
			return nil, err
		}
		product.ImageAlt = imageAlt
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return nil, db.Classify(err, "update product")
	}

	return s.toResponse(ctx, product)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperr.NotFound("product")
	}

	// The cascade is explicit: link rows die with the product inside the same
	// unit of work. Categories stay.
	return db.InTx(ctx, s.db, "delete product", func(tx *gorm.DB) error {
		if err := s.repo.DeleteLinksByProduct(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.LinkResponse, error) {
	if err := validation.IntID(req.ProductID, "product_id"); err != nil {
		return nil, err
	}
	if err := validation.IntID(req.CategoryID, "category_id"); err != nil {
		return nil, err
	}

	link := &domain.ProductCategory{
		ID:         s.genID.Generate().Int64(),
		ProductID:  req.ProductID,
		CategoryID: req.CategoryID,
	}
	err := db.InTx(ctx, s.db, "link product to category", func(tx *gorm.DB) error {
		return s.repo.InsertLink(ctx, tx, link)
	})
	if err != nil {
		s.log.Warn("link creation rejected",
			zap.Int64("product_id", req.ProductID),
			zap.Int64("category_id", req.CategoryID),
			zap.Error(err),
		)
		return nil, err
	}

	return &domain.LinkResponse{ID: link.ID, ProductID: link.ProductID, CategoryID: link.CategoryID}, nil
}

func (s *Service) ListLinks(ctx context.Context) ([]domain.LinkResponse, error) {
	links, err := s.repo.FindAllLinks(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.LinkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, domain.LinkResponse{ID: link.ID, ProductID: link.ProductID, CategoryID: link.CategoryID})
	}
	return resp, nil
}

func (s *Service) DeleteLink(ctx context.Context, id int64) error {
	link, err := s.repo.FindLink(ctx, s.db, id)
	if err != nil {
		return err
	}
	if link == nil {
		return apperr.NotFound("product category")
	}
	return s.repo.DeleteLink(ctx, s.db, id)
}

func (s *Service) toResponse(ctx context.Context, p *domain.Product) (*domain.Response, error) {
	categories, err := s.repo.CategoriesOf(ctx, s.db, p.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	return &domain.Response{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        validation.MinorUnitsToDollar(p.PriceCents),
		PriceCents:   p.PriceCents,
		ItemQuantity: p.ItemQuantity,
		ImageURL:     p.ImageURL,
		ImageAlt:     p.ImageAlt,
		Categories:   names,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}
