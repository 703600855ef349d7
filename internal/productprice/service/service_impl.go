package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/quotehub/internal/productprice/domain"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("productprice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Set(ctx context.Context, req domain.SetPriceRequest) (domain.ProductPrice, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return domain.ProductPrice{}, domain.ErrInvalidProduct
	}
	regionID := strings.TrimSpace(req.RegionID)
	if regionID == "" {
		return domain.ProductPrice{}, domain.ErrInvalidRegion
	}
	if req.Price < 0 {
		return domain.ProductPrice{}, domain.ErrInvalidPrice
	}

	existing, err := s.repo.FindByProductAndRegion(ctx, s.db, productID, regionID)
	if err != nil {
		return domain.ProductPrice{}, err
	}

	now := time.Now().UTC()
	if existing != nil {
		existing.Price = req.Price
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return domain.ProductPrice{}, err
		}
		return *existing, nil
	}

	price := domain.ProductPrice{
		ID:        s.genID.Generate("prod_price"),
		ProductID: productID,
		RegionID:  regionID,
		Price:     req.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &price); err != nil {
		return domain.ProductPrice{}, err
	}
	return price, nil
}

func (s *Service) Lookup(ctx context.Context, productID, regionID string) (*domain.ProductPrice, error) {
	if strings.TrimSpace(productID) == "" || strings.TrimSpace(regionID) == "" {
		return nil, nil
	}
	return s.repo.FindByProductAndRegion(ctx, s.db, productID, regionID)
}

func (s *Service) ListByRegion(ctx context.Context, req domain.ListPriceRequest) (domain.ListPriceResponse, error) {
	regionID := strings.TrimSpace(req.RegionID)
	if regionID == "" {
		return domain.ListPriceResponse{}, domain.ErrInvalidRegion
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	prices, err := s.repo.ListByRegion(ctx, s.db, regionID, req.Offset, limit)
	if err != nil {
		return domain.ListPriceResponse{}, err
	}

	count, err := s.repo.CountByRegion(ctx, s.db, regionID)
	if err != nil {
		return domain.ListPriceResponse{}, err
	}

	if prices == nil {
		prices = []domain.ProductPrice{}
	}

	return domain.ListPriceResponse{
		Prices: prices,
		Count:  count,
		Offset: req.Offset,
		Limit:  limit,
	}, nil
}

// Delete removes a price entry. Missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}

	price, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if price == nil {
		return nil
	}

	return s.repo.Delete(ctx, s.db, id)
}
