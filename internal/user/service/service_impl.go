package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	regiondomain "github.com/smallbiznis/quotehub/internal/region/domain"
	"github.com/smallbiznis/quotehub/internal/user/domain"
	"github.com/smallbiznis/quotehub/internal/user/password"
	"github.com/smallbiznis/quotehub/pkg/db"
	"github.com/smallbiznis/quotehub/pkg/entityid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *entityid.Generator
	Repo       domain.Repository
	RegionRepo regiondomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *entityid.Generator
	repo       domain.Repository
	regionRepo regiondomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("user.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		regionRepo: p.RegionRepo,
	}
}

// resolveRegions maps the requested region ids to rows. Any id that does
// not resolve invalidates the whole set.
func (s *Service) resolveRegions(ctx context.Context, tx *gorm.DB, ids []string) ([]regiondomain.Region, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	regions, err := s.regionRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(regions) != len(ids) {
		return nil, domain.ErrInvalidData
	}
	return regions, nil
}

func newAPIToken() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	role := req.Role
	if role == "" {
		role = domain.RoleSaleman
	}
	if role != domain.RoleAdmin && role != domain.RoleSaleman {
		return domain.User{}, domain.ErrInvalidRole
	}

	if len(req.Password) < 8 {
		return domain.User{}, domain.ErrInvalidPassword
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}

		regions, err := s.resolveRegions(ctx, tx, req.RegionIDs)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user = domain.User{
			ID:           s.genID.Generate("usr"),
			Role:         role,
			Email:        email,
			Name:         name,
			Phone:        strings.TrimSpace(req.Phone),
			PasswordHash: hash,
			APIToken:     newAPIToken(),
			Metadata:     datatypes.JSONMap{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.repo.Insert(ctx, tx, &user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicate
			}
			return err
		}
		if len(regions) > 0 {
			if err := s.repo.ReplaceRegions(ctx, tx, &user, regions); err != nil {
				return err
			}
			user.Regions = regions
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateUserRequest) (domain.User, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.User{}, domain.ErrInvalidID
	}

	var updated domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.repo.FindByID(ctx, tx, req.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email == "" || !strings.Contains(email, "@") {
				return domain.ErrInvalidEmail
			}
			if email != user.Email {
				existing, err := s.repo.FindByEmail(ctx, tx, email)
				if err != nil {
					return err
				}
				if existing != nil {
					return domain.ErrDuplicate
				}
			}
			user.Email = email
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.ErrInvalidName
			}
			user.Name = name
		}
		if req.Phone != nil {
			user.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Role != nil {
			if *req.Role != domain.RoleAdmin && *req.Role != domain.RoleSaleman {
				return domain.ErrInvalidRole
			}
			user.Role = *req.Role
		}
		user.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicate
			}
			return err
		}

		// Region set replaced only when every requested id resolves.
		if req.RegionIDs != nil {
			regions, err := s.resolveRegions(ctx, tx, req.RegionIDs)
			if err != nil {
				return err
			}
			if regions == nil {
				regions = []regiondomain.Region{}
			}
			if err := s.repo.ReplaceRegions(ctx, tx, user, regions); err != nil {
				return err
			}
			user.Regions = regions
		}

		updated = *user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetUserRequest) (domain.User, error) {
	if strings.TrimSpace(req.ID) == "" {
		return domain.User{}, domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}

	return *user, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.User{}, domain.ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}

	return *user, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) (domain.ListUserResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListUserFilter{
		Role:   req.Role,
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Offset: req.Offset,
		Limit:  limit,
	}

	return s.list(ctx, filter, req.Offset, limit)
}

func (s *Service) Filter(ctx context.Context, q string, offset, limit int) (domain.ListUserResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListUserFilter{
		Query:  strings.TrimSpace(q),
		Offset: offset,
		Limit:  limit,
	}

	return s.list(ctx, filter, offset, limit)
}

func (s *Service) list(ctx context.Context, filter domain.ListUserFilter, offset, limit int) (domain.ListUserResponse, error) {
	users, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	count, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	if users == nil {
		users = []domain.User{}
	}

	return domain.ListUserResponse{
		Users:  users,
		Count:  count,
		Offset: offset,
		Limit:  limit,
	}, nil
}

func (s *Service) SetPassword(ctx context.Context, id, pw string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	if len(pw) < 8 {
		return domain.ErrInvalidPassword
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	hash, err := password.Hash(pw)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, s.db, user)
}

// Delete removes a user. Missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	return s.repo.Delete(ctx, s.db, id)
}
