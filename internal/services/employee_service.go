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
	"github.com/AntonZhikin/OfficeDepartment/pkg/service"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type EmployeeServiceInterface interface {
	List(ctx context.Context, filterDTO dto.EmployeeFilterDTO) ([]entities.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeDetailDTO, error)
	Create(ctx context.Context, createDTO dto.CreateEmployeeDTO, mctx MutationContext) (*entities.Employee, error)
	Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateEmployeeDTO, mctx MutationContext) (*entities.Employee, error)
	Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error
}

type EmployeeService struct {
	db             repositories.Querier
	employeeRepo   repositories.EmployeeRepositoryInterface
	branchRepo     repositories.BranchOfficeRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	pipeline       *Pipeline[entities.Employee, dto.CreateEmployeeDTO, dto.UpdateEmployeeDTO]
	logger         *zap.Logger
}

func NewEmployeeService(
	db repositories.Querier,
	employeeRepo repositories.EmployeeRepositoryInterface,
	branchRepo repositories.BranchOfficeRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	hasher service.PasswordHasher,
	tx repositories.TxManagerInterface,
	audit AuditRecorderInterface,
	logger *zap.Logger,
) EmployeeServiceInterface {
	checkRefs := func(ctx context.Context, q repositories.Querier, branchID, departmentID *uuid.UUID) error {
		if branchID != nil {
			exists, err := branchRepo.Exists(ctx, q, *branchID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError("указанный филиал не существует")
			}
		}
		if departmentID != nil {
			exists, err := departmentRepo.Exists(ctx, q, *departmentID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError("указанный отдел не существует")
			}
		}
		return nil
	}

	desc := EntityDescriptor[entities.Employee, dto.CreateEmployeeDTO, dto.UpdateEmployeeDTO]{
		EntityType: "Employee",
		ID:         func(e *entities.Employee) uuid.UUID { return e.ID },
		Find:       employeeRepo.FindByID,
		Insert:     employeeRepo.Insert,
		Update:     employeeRepo.Update,
		Delete:     employeeRepo.Delete,
		New: func(c *dto.CreateEmployeeDTO) *entities.Employee {
			hireDate := time.Now().UTC()
			if c.HireDate.Valid {
				hireDate = c.HireDate.Time.UTC()
			}
			employee := &entities.Employee{
				ID:             uuid.New(),
				FirstName:      c.FirstName,
				LastName:       c.LastName,
				Email:          c.Email,
				PhoneNumber:    c.PhoneNumber,
				Position:       c.Position,
				BranchOfficeID: c.BranchOfficeID,
				DepartmentID:   c.DepartmentID,
				HireDate:       hireDate,
			}
			employee.CreatedAt = time.Now().UTC()
			return employee
		},
		Apply: func(e *entities.Employee, u *dto.UpdateEmployeeDTO) error {
			e.FirstName = u.FirstName
			e.LastName = u.LastName
			e.Email = u.Email
			e.PhoneNumber = u.PhoneNumber
			e.Position = u.Position
			e.BranchOfficeID = u.BranchOfficeID
			e.DepartmentID = u.DepartmentID
			now := time.Now().UTC()
			e.UpdatedAt = &now
			return nil
		},
		CheckCreateRefs: func(ctx context.Context, q repositories.Querier, c *dto.CreateEmployeeDTO) error {
			return checkRefs(ctx, q, c.BranchOfficeID, c.DepartmentID)
		},
		CheckUpdateRefs: func(ctx context.Context, q repositories.Querier, _ *entities.Employee, u *dto.UpdateEmployeeDTO) error {
			return checkRefs(ctx, q, u.BranchOfficeID, u.DepartmentID)
		},
		// Если в DTO есть учётные данные, в той же транзакции создаётся
		// User и привязывается к сотруднику. Запись аудита при этом
		// одна — на сотрудника.
		BeforeInsert: func(ctx context.Context, q repositories.Querier, c *dto.CreateEmployeeDTO, e *entities.Employee) error {
			if c.Username == "" || c.Password == "" {
				return nil
			}

			taken, err := userRepo.ExistsByUsername(ctx, q, c.Username)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewConflictError("имя пользователя уже занято")
			}
			taken, err = userRepo.ExistsByEmail(ctx, q, c.Email)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewConflictError("email уже используется")
			}

			hash, err := hasher.HashPassword(c.Password)
			if err != nil {
				return err
			}

			user := &entities.User{
				ID:           uuid.New(),
				Username:     c.Username,
				Email:        c.Email,
				PasswordHash: hash,
				Role:         entities.RoleUser,
			}
			user.CreatedAt = time.Now().UTC()
			if err := userRepo.Insert(ctx, q, user); err != nil {
				return err
			}

			e.UserID = &user.ID
			return nil
		},
		// Учётная запись сотрудника живёт и умирает вместе с ним.
		BeforeDelete: func(ctx context.Context, q repositories.Querier, e *entities.Employee, _ MutationContext) error {
			if e.UserID == nil {
				return nil
			}
			err := userRepo.Delete(ctx, q, *e.UserID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		},
	}

	return &EmployeeService{
		db:             db,
		employeeRepo:   employeeRepo,
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		pipeline:       NewPipeline(desc, tx, audit),
		logger:         logger,
	}
}

func (s *EmployeeService) List(ctx context.Context, filterDTO dto.EmployeeFilterDTO) ([]entities.Employee, error) {
	filter := types.NewFilter()
	filter.Search = filterDTO.SearchTerm
	filter.Page = filterDTO.Page
	filter.PageSize = filterDTO.PageSize
	if filterDTO.BranchOfficeID != nil {
		filter.Filter["branchOfficeId"] = filterDTO.BranchOfficeID.String()
	}
	if filterDTO.DepartmentID != nil {
		filter.Filter["departmentId"] = filterDTO.DepartmentID.String()
	}
	if filterDTO.Position != "" {
		filter.Filter["position"] = filterDTO.Position
	}

	return s.employeeRepo.List(ctx, s.db, filter)
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*dto.EmployeeDetailDTO, error) {
	employee, err := s.employeeRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.EmployeeDetailDTO{Employee: *employee}

	if employee.BranchOfficeID != nil {
		branch, err := s.branchRepo.FindByID(ctx, s.db, *employee.BranchOfficeID)
		if err == nil {
			detail.BranchOffice = &dto.ShortBranchOfficeDTO{ID: branch.ID, Name: branch.Name, City: branch.City}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if employee.DepartmentID != nil {
		department, err := s.departmentRepo.FindByID(ctx, s.db, *employee.DepartmentID)
		if err == nil {
			detail.Department = &dto.ShortDepartmentDTO{ID: department.ID, Name: department.Name}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return detail, nil
}

func (s *EmployeeService) Create(ctx context.Context, createDTO dto.CreateEmployeeDTO, mctx MutationContext) (*entities.Employee, error) {
	employee, err := s.pipeline.Create(ctx, &createDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Сотрудник создан", zap.String("id", employee.ID.String()))
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateEmployeeDTO, mctx MutationContext) (*entities.Employee, error) {
	employee, err := s.pipeline.Update(ctx, id, &updateDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Сотрудник обновлён", zap.String("id", employee.ID.String()))
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error {
	if err := s.pipeline.Delete(ctx, id, mctx); err != nil {
		return err
	}
	s.logger.Info("Сотрудник удалён", zap.String("id", id.String()))
	return nil
}
