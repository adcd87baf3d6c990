package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
	"github.com/montluxe/storefront/internal/order/domain"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
	"github.com/montluxe/storefront/internal/validation"
	"github.com/montluxe/storefront/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Users userdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	users userdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
		repo:  p.Repo,
		users: p.Users,
	}
}

func (s *Service) CreateWithItems(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if err := validation.IntID(req.UserID, "user_id"); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		return nil, err
	}

	// Every line item is validated before any row is staged; one bad item
	// fails the whole call with nothing written.
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order_details", apperr.ReasonBlank)
	}
	for _, item := range req.Items {
		if err := validation.IntID(item.ProductID, "product_id"); err != nil {
			return nil, err
		}
		if err := validation.PositiveInt(item.Quantity, "quantity"); err != nil {
			return nil, err
		}
	}

	order := &domain.Order{
		ID:        s.genID.Generate().Int64(),
		UserID:    req.UserID,
		CreatedAt: time.Now().UTC(),
	}

	err := db.InTx(ctx, s.db, "create order", func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, order); err != nil {
			return err
		}
		for _, item := range req.Items {
			detail := &domain.OrderDetail{
				ID:        s.genID.Generate().Int64(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := s.repo.InsertDetail(ctx, tx, detail); err != nil {
				return err
			}
			order.Details = append(order.Details, *detail)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("order creation rolled back",
			zap.Int64("user_id", req.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order")
	}

	resp := toResponse(order)
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

func (s *Service) ListDetails(ctx context.Context) ([]domain.DetailResponse, error) {
	details, err := s.repo.FindAllDetails(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.DetailResponse, 0, len(details))
	for i := range details {
		resp = append(resp, toDetailResponse(&details[i]))
	}
	return resp, nil
}

func toResponse(o *domain.Order) domain.Response {
	details := make([]domain.DetailResponse, 0, len(o.Details))
	for i := range o.Details {
		details = append(details, toDetailResponse(&o.Details[i]))
	}
	return domain.Response{
		ID:        o.ID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		Details:   details,
	}
}

func toDetailResponse(d *domain.OrderDetail) domain.DetailResponse {
	return domain.DetailResponse{
		ID:        d.ID,
		OrderID:   d.OrderID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
	}
}
