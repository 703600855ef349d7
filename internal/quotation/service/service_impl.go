package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/quotehub/internal/config"
	pricedomain "github.com/smallbiznis/quotehub/internal/productprice/domain"
	"github.com/smallbiznis/quotehub/internal/quotation/domain"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *entityid.Generator
	Repo      domain.Repository
	PriceRepo pricedomain.Repository
	Documents *config.DocumentConfigHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *entityid.Generator
	repo      domain.Repository
	priceRepo pricedomain.Repository
	documents *config.DocumentConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("quotation.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		priceRepo: p.PriceRepo,
		documents: p.Documents,
	}
}

func validateCreate(req domain.CreateQuotationRequest) error {
	switch {
	case strings.TrimSpace(req.SalePersionID) == "",
		strings.TrimSpace(req.CustomerID) == "",
		strings.TrimSpace(req.RegionID) == "",
		strings.TrimSpace(req.Code) == "",
		strings.TrimSpace(req.Title) == "":
		return domain.ErrInvalidData
	}
	if len(req.QuotationLines) == 0 {
		return domain.ErrInvalidData
	}
	for _, line := range req.QuotationLines {
		if strings.TrimSpace(line.ProductID) == "" || line.Volume < 1 {
			return domain.ErrInvalidData
		}
		for _, child := range line.ChildProduct {
			if strings.TrimSpace(child.ProductID) == "" || child.Volume < 1 {
				return domain.ErrInvalidData
			}
		}
	}
	return nil
}

// resolveLines prices the requested line tree against the quotation's
// region. Lines without a published price are dropped, not rejected; the
// effective quotation content depends on the price book at creation time.
func (s *Service) resolveLines(ctx context.Context, tx *gorm.DB, quotationID, regionID string, inputs []domain.CreateQuotationLineInput) (parents, children []domain.QuotationLine, err error) {
	now := time.Now().UTC()

	for _, input := range inputs {
		price, err := s.priceRepo.FindByProductAndRegion(ctx, tx, input.ProductID, regionID)
		if err != nil {
			return nil, nil, err
		}
		if price == nil {
			// No price in this region: the whole line, children
			// included, is silently dropped.
			s.log.Debug("dropping unpriced line",
				zap.String("product_id", input.ProductID),
				zap.String("region_id", regionID),
			)
			continue
		}

		parent := domain.QuotationLine{
			ID:          s.genID.Generate("qline"),
			QuotationID: quotationID,
			ProductID:   input.ProductID,
			Volume:      input.Volume,
			UnitPrice:   price.Price,
			Game:        input.Game,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		for _, childInput := range input.ChildProduct {
			// A child referencing the parent's own product is excluded
			// regardless of price availability.
			if childInput.ProductID == input.ProductID {
				continue
			}
			childPrice, err := s.priceRepo.FindByProductAndRegion(ctx, tx, childInput.ProductID, regionID)
			if err != nil {
				return nil, nil, err
			}
			if childPrice == nil {
				continue
			}
			parentID := parent.ID
			children = append(children, domain.QuotationLine{
				ID:           s.genID.Generate("qline"),
				QuotationID:  quotationID,
				ParentLineID: &parentID,
				ProductID:    childInput.ProductID,
				Volume:       childInput.Volume,
				UnitPrice:    childPrice.Price,
				Game:         childInput.Game,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}

		parents = append(parents, parent)
	}

	return parents, children, nil
}

func (s *Service) applyDocumentDefaults(req *domain.CreateQuotationRequest) {
	defaults := s.documents.Get()
	if req.PaymentTerm == "" {
		req.PaymentTerm = defaults.PaymentTerm
	}
	if req.DeliveryLeadTime == "" {
		req.DeliveryLeadTime = defaults.DeliveryLeadTime
	}
	if req.Warranty == "" {
		req.Warranty = defaults.Warranty
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateQuotationRequest) (domain.Quotation, error) {
	if err := validateCreate(req); err != nil {
		return domain.Quotation{}, err
	}

	s.applyDocumentDefaults(&req)

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	var created domain.Quotation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quotationID := s.genID.Generate("quot")

		parents, children, err := s.resolveLines(ctx, tx, quotationID, req.RegionID, req.QuotationLines)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		quotation := domain.Quotation{
			ID:               quotationID,
			SalePersionID:    req.SalePersionID,
			CustomerID:       req.CustomerID,
			RegionID:         req.RegionID,
			Title:            req.Title,
			Code:             req.Code,
			Date:             req.Date,
			Heading:          req.Heading,
			Condition:        req.Condition,
			PaymentTerm:      req.PaymentTerm,
			DeliveryLeadTime: req.DeliveryLeadTime,
			Warranty:         req.Warranty,
			InstallSupport:   req.InstallSupport,
			AppendixA:        req.AppendixA,
			AppendixB:        req.AppendixB,
			Metadata:         metadata,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		// Parents land before children so the self-referencing FK is
		// always resolvable.
		if err := s.repo.Insert(ctx, tx, &quotation); err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, tx, parents); err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, tx, children); err != nil {
			return err
		}

		// Re-read the persisted aggregate without forcing relations.
		persisted, err := s.repo.FindOneWithRelations(ctx, tx, nil, domain.FindOptions{
			Filter: domain.Filter{IDs: []string{quotationID}},
		})
		if err != nil {
			return err
		}
		if persisted == nil {
			return domain.ErrNotFound
		}
		created = *persisted
		return nil
	})
	if err != nil {
		return domain.Quotation{}, err
	}

	return created, nil
}

func (s *Service) Retrieve(ctx context.Context, id string, cfg domain.FindConfig) (domain.Quotation, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Quotation{}, domain.ErrInvalidData
	}

	quotation, err := s.repo.FindOneWithRelations(ctx, s.db, cfg.Relations, domain.FindOptions{
		Filter: domain.Filter{IDs: []string{id}},
		Fields: cfg.Fields,
	})
	if err != nil {
		return domain.Quotation{}, err
	}
	if quotation == nil {
		return domain.Quotation{}, domain.ErrNotFound
	}

	return *quotation, nil
}

func findOptions(filter domain.Filter, cfg domain.FindConfig) domain.FindOptions {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	return domain.FindOptions{
		Filter: filter,
		Offset: cfg.Offset,
		Limit:  limit,
		Order:  cfg.Order,
		Fields: cfg.Fields,
	}
}

func (s *Service) List(ctx context.Context, filter domain.Filter, cfg domain.FindConfig) ([]domain.Quotation, error) {
	opts := findOptions(filter, cfg)

	if q := strings.TrimSpace(filter.Q); q != "" {
		quotations, _, err := s.repo.FreeTextSearchAndCount(ctx, s.db, q, opts, cfg.Relations)
		return quotations, err
	}

	return s.repo.FindWithRelations(ctx, s.db, cfg.Relations, opts)
}

func (s *Service) ListAndCount(ctx context.Context, filter domain.Filter, cfg domain.FindConfig, regionID string) ([]domain.Quotation, int64, error) {
	if regionID != "" {
		filter.RegionID = regionID
	}
	opts := findOptions(filter, cfg)

	if q := strings.TrimSpace(filter.Q); q != "" {
		return s.repo.FreeTextSearchAndCount(ctx, s.db, q, opts, cfg.Relations)
	}

	return s.repo.FindWithRelationsAndCount(ctx, s.db, cfg.Relations, opts)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidData
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quotation, err := s.repo.FindOneWithRelations(ctx, tx, []string{"quotation_lines"}, domain.FindOptions{
			Filter: domain.Filter{IDs: []string{id}},
		})
		if err != nil {
			return err
		}
		if quotation == nil {
			// Idempotent: deleting a missing quotation is a no-op.
			return nil
		}
		return s.repo.SoftDeleteTree(ctx, tx, quotation)
	})
}
