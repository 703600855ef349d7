package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/quotehub/internal/customer/domain"
	"github.com/smallbiznis/quotehub/pkg/db"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *entityid.Generator
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *entityid.Generator
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate("cus"),
		Email:     email,
		FirstName: firstName,
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
		Company:   strings.TrimSpace(req.Company),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.Customer{}, domain.ErrInvalidEmail
		}
		customer.Email = email
	}
	if req.FirstName != nil {
		firstName := strings.TrimSpace(*req.FirstName)
		if firstName == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.FirstName = firstName
	}
	if req.LastName != nil {
		customer.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		customer.Company = strings.TrimSpace(*req.Company)
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		return domain.Customer{}, err
	}

	return *customer, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListCustomerFilter{
		Query:  strings.TrimSpace(req.Query),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Offset: req.Offset,
		Limit:  limit,
	}

	customers, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	count, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	if customers == nil {
		customers = []domain.Customer{}
	}

	return domain.ListCustomerResponse{
		Customers: customers,
		Count:     count,
		Offset:    req.Offset,
		Limit:     limit,
	}, nil
}

// Delete removes a customer. Missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}

	return s.repo.Delete(ctx, s.db, id)
}
