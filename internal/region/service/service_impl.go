package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/quotehub/internal/region/domain"
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
		log:   p.Log.Named("region.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRegionRequest) (domain.Region, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Region{}, domain.ErrInvalidName
	}

	currency := strings.ToLower(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		return domain.Region{}, domain.ErrInvalidCurrency
	}

	now := time.Now().UTC()
	region := domain.Region{
		ID:           s.genID.Generate("reg"),
		Name:         name,
		CurrencyCode: currency,
		TaxRate:      req.TaxRate,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &region); err != nil {
		return domain.Region{}, err
	}

	return region, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRegionRequest) (domain.Region, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.Region{}, domain.ErrInvalidID
	}

	region, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Region{}, err
	}
	if region == nil {
		return domain.Region{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Region{}, domain.ErrInvalidName
		}
		region.Name = name
	}
	if req.CurrencyCode != nil {
		currency := strings.ToLower(strings.TrimSpace(*req.CurrencyCode))
		if currency == "" {
			return domain.Region{}, domain.ErrInvalidCurrency
		}
		region.CurrencyCode = currency
	}
	if req.TaxRate != nil {
		region.TaxRate = *req.TaxRate
	}
	region.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, region); err != nil {
		return domain.Region{}, err
	}

	return *region, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetRegionRequest) (domain.Region, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.Region{}, domain.ErrInvalidID
	}

	region, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Region{}, err
	}
	if region == nil {
		return domain.Region{}, domain.ErrNotFound
	}

	return *region, nil
}

// Delete removes a region. Missing ids are a no-op. Prices scoped to the
// region stay behind but are unreachable through quotation pricing.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}

	region, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if region == nil {
		return nil
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRegionRequest) (domain.ListRegionResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListRegionFilter{
		Name:   strings.TrimSpace(req.Name),
		Offset: req.Offset,
		Limit:  limit,
	}

	regions, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListRegionResponse{}, err
	}

	count, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListRegionResponse{}, err
	}

	if regions == nil {
		regions = []domain.Region{}
	}

	return domain.ListRegionResponse{
		Regions: regions,
		Count:   count,
		Offset:  req.Offset,
		Limit:   limit,
	}, nil
}
