package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/quotehub/internal/product/domain"
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
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Product{}, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          s.genID.Generate("prod"),
		Title:       title,
		Brand:       strings.TrimSpace(req.Brand),
		Description: strings.TrimSpace(req.Description),
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.Product{}, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Product{}, domain.ErrInvalidTitle
		}
		product.Title = title
	}
	if req.Brand != nil {
		product.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return domain.Product{}, err
	}

	return *product, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetProductRequest) (domain.Product, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.Product{}, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	return *product, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListProductFilter{
		Query:  strings.TrimSpace(req.Query),
		Brand:  strings.TrimSpace(req.Brand),
		Offset: req.Offset,
		Limit:  limit,
	}

	products, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	count, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	if products == nil {
		products = []domain.Product{}
	}

	return domain.ListProductResponse{
		Products: products,
		Count:    count,
		Offset:   req.Offset,
		Limit:    limit,
	}, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]string, error) {
	brands, err := s.repo.ListBrands(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []string{}
	}
	return brands, nil
}

// Delete removes a product. Missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) CreateHardwareLink(ctx context.Context, req domain.CreateHardwareLinkRequest) (domain.ProductAdditionalHardware, error) {
	parentID := strings.TrimSpace(req.ProductParentID)
	additionsID := strings.TrimSpace(req.ProductAdditionsID)
	if parentID == "" || additionsID == "" || parentID == additionsID {
		return domain.ProductAdditionalHardware{}, domain.ErrInvalidProduct
	}

	// Both ends of the link must exist.
	products, err := s.repo.FindByIDs(ctx, s.db, []string{parentID, additionsID})
	if err != nil {
		return domain.ProductAdditionalHardware{}, err
	}
	if len(products) != 2 {
		return domain.ProductAdditionalHardware{}, domain.ErrInvalidProduct
	}

	now := time.Now().UTC()
	link := domain.ProductAdditionalHardware{
		ID:                 s.genID.Generate("prod_additions"),
		ProductParentID:    parentID,
		ProductAdditionsID: additionsID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.InsertHardwareLink(ctx, s.db, &link); err != nil {
		return domain.ProductAdditionalHardware{}, err
	}

	return link, nil
}

func (s *Service) ListHardwareLinks(ctx context.Context, parentID string) ([]domain.ProductAdditionalHardware, error) {
	if strings.TrimSpace(parentID) == "" {
		return nil, domain.ErrInvalidID
	}

	links, err := s.repo.ListHardwareLinks(ctx, s.db, parentID)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []domain.ProductAdditionalHardware{}
	}
	return links, nil
}

func (s *Service) DeleteHardwareLink(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteHardwareLink(ctx, s.db, id)
}
