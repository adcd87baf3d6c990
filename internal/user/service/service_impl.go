package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/montluxe/storefront/internal/apperr"
	"github.com/montluxe/storefront/internal/user/domain"
	"github.com/montluxe/storefront/internal/validation"
	"github.com/montluxe/storefront/pkg/db"
)

// Matches a simple local@domain.tld shape; anything stricter belongs to a
// mail-delivery concern this core does not own.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

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
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	username, err := validation.NotBlank(req.Username, "username")
	if err != nil {
		return nil, err
	}
	email, err := validation.NotBlank(req.Email, "email")
	if err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validation("email", apperr.ReasonInvalidFormat)
	}
	lastName, err := validation.NotBlank(req.LastName, "last_name")
	if err != nil {
		return nil, err
	}
	if _, err := validation.NotBlank(req.Password, "password"); err != nil {
		return nil, err
	}
	shippingAddress, err := validation.NotBlank(req.ShippingAddress, "shipping_address")
	if err != nil {
		return nil, err
	}
	shippingCity, err := validation.NotBlank(req.ShippingCity, "shipping_city")
	if err != nil {
		return nil, err
	}
	shippingState, err := validation.NotBlank(req.ShippingState, "shipping_state")
	if err != nil {
		return nil, err
	}
	shippingZip, err := validation.NotBlank(req.ShippingZip, "shipping_zip")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:              s.genID.Generate().Int64(),
		Username:        username,
		Email:           strings.ToLower(email),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        lastName,
		ShippingAddress: shippingAddress,
		ShippingCity:    shippingCity,
		ShippingState:   shippingState,
		ShippingZip:     shippingZip,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	err = db.InTx(ctx, s.db, "username or email", func(tx *gorm.DB) error {
		return s.repo.Insert(ctx, tx, user)
	})
	if err != nil {
		s.log.Warn("user creation rejected",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	resp := toResponse(user)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Response, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	resp := toResponse(user)
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

func (s *Service) Authenticate(ctx context.Context, username, plaintext string) (*domain.Response, error) {
	user, err := s.verifyCredentials(ctx, username, plaintext)
	if err != nil {
		return nil, err
	}

	resp := toResponse(user)
	return &resp, nil
}

func (s *Service) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error {
	if _, err := validation.NotBlank(req.NewPassword, "newPassword"); err != nil {
		return err
	}

	user, err := s.verifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	return s.repo.UpdatePasswordHash(ctx, s.db, user)
}

func (s *Service) Delete(ctx context.Context, username, plaintext string) error {
	user, err := s.verifyCredentials(ctx, username, plaintext)
	if err != nil {
		return err
	}

	return db.InTx(ctx, s.db, "delete user", func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, user.ID)
	})
}

func (s *Service) verifyCredentials(ctx context.Context, username, plaintext string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, s.db, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Authenticate(plaintext) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func toResponse(u *domain.User) domain.Response {
	return domain.Response{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		ShippingCity:    u.ShippingCity,
		ShippingState:   u.ShippingState,
		ShippingZip:     u.ShippingZip,
		CreatedAt:       u.CreatedAt,
	}
}
