package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type HeadOfficeServiceInterface interface {
	List(ctx context.Context, filterDTO dto.HeadOfficeFilterDTO) ([]entities.HeadOffice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.HeadOfficeDetailDTO, error)
	Create(ctx context.Context, createDTO dto.CreateHeadOfficeDTO, mctx MutationContext) (*entities.HeadOffice, error)
	Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateHeadOfficeDTO, mctx MutationContext) (*entities.HeadOffice, error)
	Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error
}

type HeadOfficeService struct {
	db             repositories.Querier
	headOfficeRepo repositories.HeadOfficeRepositoryInterface
	branchRepo     repositories.BranchOfficeRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	pipeline       *Pipeline[entities.HeadOffice, dto.CreateHeadOfficeDTO, dto.UpdateHeadOfficeDTO]
	logger         *zap.Logger
}

func NewHeadOfficeService(
	db repositories.Querier,
	headOfficeRepo repositories.HeadOfficeRepositoryInterface,
	branchRepo repositories.BranchOfficeRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	tx repositories.TxManagerInterface,
	audit AuditRecorderInterface,
	logger *zap.Logger,
) HeadOfficeServiceInterface {
	desc := EntityDescriptor[entities.HeadOffice, dto.CreateHeadOfficeDTO, dto.UpdateHeadOfficeDTO]{
		EntityType: "HeadOffice",
		ID:         func(e *entities.HeadOffice) uuid.UUID { return e.ID },
		Find:       headOfficeRepo.FindByID,
		Insert:     headOfficeRepo.Insert,
		Update:     headOfficeRepo.Update,
		Delete:     headOfficeRepo.Delete,
		New: func(c *dto.CreateHeadOfficeDTO) *entities.HeadOffice {
			office := &entities.HeadOffice{
				ID:          uuid.New(),
				Name:        c.Name,
				Address:     c.Address,
				City:        c.City,
				Country:     c.Country,
				PhoneNumber: c.PhoneNumber,
				Email:       c.Email,
			}
			office.CreatedAt = time.Now().UTC()
			return office
		},
		Apply: func(e *entities.HeadOffice, u *dto.UpdateHeadOfficeDTO) error {
			e.Name = u.Name
			e.Address = u.Address
			e.City = u.City
			e.Country = u.Country
			e.PhoneNumber = u.PhoneNumber
			e.Email = u.Email
			now := time.Now().UTC()
			e.UpdatedAt = &now
			return nil
		},
		BeforeDelete: func(ctx context.Context, q repositories.Querier, e *entities.HeadOffice, _ MutationContext) error {
			has, err := headOfficeRepo.HasDependents(ctx, q, e.ID)
			if err != nil {
				return err
			}
			if has {
				return apperrors.NewConflictError("нельзя удалить головной офис: к нему привязаны филиалы или отделы")
			}
			return nil
		},
	}

	return &HeadOfficeService{
		db:             db,
		headOfficeRepo: headOfficeRepo,
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		pipeline:       NewPipeline(desc, tx, audit),
		logger:         logger,
	}
}

func (s *HeadOfficeService) List(ctx context.Context, filterDTO dto.HeadOfficeFilterDTO) ([]entities.HeadOffice, error) {
	filter := types.NewFilter()
	filter.Search = filterDTO.SearchTerm
	filter.Page = filterDTO.Page
	filter.PageSize = filterDTO.PageSize
	if filterDTO.City != "" {
		filter.Filter["city"] = filterDTO.City
	}
	if filterDTO.Country != "" {
		filter.Filter["country"] = filterDTO.Country
	}

	return s.headOfficeRepo.List(ctx, s.db, filter)
}

func (s *HeadOfficeService) GetByID(ctx context.Context, id uuid.UUID) (*dto.HeadOfficeDetailDTO, error) {
	office, err := s.headOfficeRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	branches, err := s.branchRepo.ListShortByHeadOffice(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	departments, err := s.departmentRepo.ListShortByHeadOffice(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	return &dto.HeadOfficeDetailDTO{
		HeadOffice:    *office,
		BranchOffices: branches,
		Departments:   departments,
	}, nil
}

func (s *HeadOfficeService) Create(ctx context.Context, createDTO dto.CreateHeadOfficeDTO, mctx MutationContext) (*entities.HeadOffice, error) {
	office, err := s.pipeline.Create(ctx, &createDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Головной офис создан", zap.String("id", office.ID.String()))
	return office, nil
}

func (s *HeadOfficeService) Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateHeadOfficeDTO, mctx MutationContext) (*entities.HeadOffice, error) {
	office, err := s.pipeline.Update(ctx, id, &updateDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Головной офис обновлён", zap.String("id", office.ID.String()))
	return office, nil
}

func (s *HeadOfficeService) Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error {
	if err := s.pipeline.Delete(ctx, id, mctx); err != nil {
		return err
	}
	s.logger.Info("Головной офис удалён", zap.String("id", id.String()))
	return nil
}
