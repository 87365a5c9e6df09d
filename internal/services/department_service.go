package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type DepartmentServiceInterface interface {
	List(ctx context.Context, filterDTO dto.DepartmentFilterDTO) ([]entities.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DepartmentDetailDTO, error)
	Create(ctx context.Context, createDTO dto.CreateDepartmentDTO, mctx MutationContext) (*entities.Department, error)
	Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateDepartmentDTO, mctx MutationContext) (*entities.Department, error)
	Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error
}

type DepartmentService struct {
	db             repositories.Querier
	departmentRepo repositories.DepartmentRepositoryInterface
	headOfficeRepo repositories.HeadOfficeRepositoryInterface
	employeeRepo   repositories.EmployeeRepositoryInterface
	pipeline       *Pipeline[entities.Department, dto.CreateDepartmentDTO, dto.UpdateDepartmentDTO]
	logger         *zap.Logger
}

func NewDepartmentService(
	db repositories.Querier,
	departmentRepo repositories.DepartmentRepositoryInterface,
	headOfficeRepo repositories.HeadOfficeRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	tx repositories.TxManagerInterface,
	audit AuditRecorderInterface,
	logger *zap.Logger,
) DepartmentServiceInterface {
	checkRefs := func(ctx context.Context, q repositories.Querier, headOfficeID uuid.UUID, managerID *uuid.UUID) error {
		exists, err := headOfficeRepo.Exists(ctx, q, headOfficeID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewBadRequestError("указанный головной офис не существует")
		}
		if managerID != nil {
			exists, err := employeeRepo.Exists(ctx, q, *managerID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError("указанный руководитель отдела не существует")
			}
		}
		return nil
	}

	desc := EntityDescriptor[entities.Department, dto.CreateDepartmentDTO, dto.UpdateDepartmentDTO]{
		EntityType: "Department",
		ID:         func(e *entities.Department) uuid.UUID { return e.ID },
		Find:       departmentRepo.FindByID,
		Insert:     departmentRepo.Insert,
		Update:     departmentRepo.Update,
		Delete:     departmentRepo.Delete,
		New: func(c *dto.CreateDepartmentDTO) *entities.Department {
			department := &entities.Department{
				ID:           uuid.New(),
				Name:         c.Name,
				Description:  c.Description,
				HeadOfficeID: c.HeadOfficeID,
				ManagerID:    c.ManagerID,
			}
			department.CreatedAt = time.Now().UTC()
			return department
		},
		Apply: func(e *entities.Department, u *dto.UpdateDepartmentDTO) error {
			e.Name = u.Name
			e.Description = u.Description
			e.HeadOfficeID = u.HeadOfficeID
			e.ManagerID = u.ManagerID
			now := time.Now().UTC()
			e.UpdatedAt = &now
			return nil
		},
		CheckCreateRefs: func(ctx context.Context, q repositories.Querier, c *dto.CreateDepartmentDTO) error {
			return checkRefs(ctx, q, c.HeadOfficeID, c.ManagerID)
		},
		CheckUpdateRefs: func(ctx context.Context, q repositories.Querier, _ *entities.Department, u *dto.UpdateDepartmentDTO) error {
			return checkRefs(ctx, q, u.HeadOfficeID, u.ManagerID)
		},
	}

	return &DepartmentService{
		db:             db,
		departmentRepo: departmentRepo,
		headOfficeRepo: headOfficeRepo,
		employeeRepo:   employeeRepo,
		pipeline:       NewPipeline(desc, tx, audit),
		logger:         logger,
	}
}

func (s *DepartmentService) List(ctx context.Context, filterDTO dto.DepartmentFilterDTO) ([]entities.Department, error) {
	filter := types.NewFilter()
	filter.Search = filterDTO.SearchTerm
	filter.Page = filterDTO.Page
	filter.PageSize = filterDTO.PageSize
	if filterDTO.HeadOfficeID != nil {
		filter.Filter["headOfficeId"] = filterDTO.HeadOfficeID.String()
	}

	return s.departmentRepo.List(ctx, s.db, filter)
}

func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DepartmentDetailDTO, error) {
	department, err := s.departmentRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.DepartmentDetailDTO{Department: *department}

	head, err := s.headOfficeRepo.FindByID(ctx, s.db, department.HeadOfficeID)
	if err == nil {
		detail.HeadOffice = &dto.ShortHeadOfficeDTO{ID: head.ID, Name: head.Name, City: head.City}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if department.ManagerID != nil {
		manager, err := s.employeeRepo.FindByID(ctx, s.db, *department.ManagerID)
		if err == nil {
			detail.Manager = &dto.ShortEmployeeDTO{
				ID:        manager.ID,
				FirstName: manager.FirstName,
				LastName:  manager.LastName,
				Position:  manager.Position,
			}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return detail, nil
}

func (s *DepartmentService) Create(ctx context.Context, createDTO dto.CreateDepartmentDTO, mctx MutationContext) (*entities.Department, error) {
	department, err := s.pipeline.Create(ctx, &createDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Отдел создан", zap.String("id", department.ID.String()))
	return department, nil
}

func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateDepartmentDTO, mctx MutationContext) (*entities.Department, error) {
	department, err := s.pipeline.Update(ctx, id, &updateDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Отдел обновлён", zap.String("id", department.ID.String()))
	return department, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error {
	if err := s.pipeline.Delete(ctx, id, mctx); err != nil {
		return err
	}
	s.logger.Info("Отдел удалён", zap.String("id", id.String()))
	return nil
}
