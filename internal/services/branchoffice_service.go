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

type BranchOfficeServiceInterface interface {
	List(ctx context.Context, filterDTO dto.BranchOfficeFilterDTO) ([]entities.BranchOffice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BranchOfficeDetailDTO, error)
	Create(ctx context.Context, createDTO dto.CreateBranchOfficeDTO, mctx MutationContext) (*entities.BranchOffice, error)
	Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateBranchOfficeDTO, mctx MutationContext) (*entities.BranchOffice, error)
	Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error
}

type BranchOfficeService struct {
	db             repositories.Querier
	branchRepo     repositories.BranchOfficeRepositoryInterface
	headOfficeRepo repositories.HeadOfficeRepositoryInterface
	pipeline       *Pipeline[entities.BranchOffice, dto.CreateBranchOfficeDTO, dto.UpdateBranchOfficeDTO]
	logger         *zap.Logger
}

func NewBranchOfficeService(
	db repositories.Querier,
	branchRepo repositories.BranchOfficeRepositoryInterface,
	headOfficeRepo repositories.HeadOfficeRepositoryInterface,
	tx repositories.TxManagerInterface,
	audit AuditRecorderInterface,
	logger *zap.Logger,
) BranchOfficeServiceInterface {
	requireHeadOffice := func(ctx context.Context, q repositories.Querier, id uuid.UUID) error {
		exists, err := headOfficeRepo.Exists(ctx, q, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewBadRequestError("указанный головной офис не существует")
		}
		return nil
	}

	desc := EntityDescriptor[entities.BranchOffice, dto.CreateBranchOfficeDTO, dto.UpdateBranchOfficeDTO]{
		EntityType: "BranchOffice",
		ID:         func(e *entities.BranchOffice) uuid.UUID { return e.ID },
		Find:       branchRepo.FindByID,
		Insert:     branchRepo.Insert,
		Update:     branchRepo.Update,
		Delete:     branchRepo.Delete,
		New: func(c *dto.CreateBranchOfficeDTO) *entities.BranchOffice {
			office := &entities.BranchOffice{
				ID:           uuid.New(),
				Name:         c.Name,
				Address:      c.Address,
				City:         c.City,
				Country:      c.Country,
				PhoneNumber:  c.PhoneNumber,
				Email:        c.Email,
				HeadOfficeID: c.HeadOfficeID,
			}
			office.CreatedAt = time.Now().UTC()
			return office
		},
		Apply: func(e *entities.BranchOffice, u *dto.UpdateBranchOfficeDTO) error {
			e.Name = u.Name
			e.Address = u.Address
			e.City = u.City
			e.Country = u.Country
			e.PhoneNumber = u.PhoneNumber
			e.Email = u.Email
			e.HeadOfficeID = u.HeadOfficeID
			now := time.Now().UTC()
			e.UpdatedAt = &now
			return nil
		},
		CheckCreateRefs: func(ctx context.Context, q repositories.Querier, c *dto.CreateBranchOfficeDTO) error {
			return requireHeadOffice(ctx, q, c.HeadOfficeID)
		},
		CheckUpdateRefs: func(ctx context.Context, q repositories.Querier, e *entities.BranchOffice, u *dto.UpdateBranchOfficeDTO) error {
			if u.HeadOfficeID == e.HeadOfficeID {
				return nil
			}
			return requireHeadOffice(ctx, q, u.HeadOfficeID)
		},
	}

	return &BranchOfficeService{
		db:             db,
		branchRepo:     branchRepo,
		headOfficeRepo: headOfficeRepo,
		pipeline:       NewPipeline(desc, tx, audit),
		logger:         logger,
	}
}

func (s *BranchOfficeService) List(ctx context.Context, filterDTO dto.BranchOfficeFilterDTO) ([]entities.BranchOffice, error) {
	filter := types.NewFilter()
	filter.Search = filterDTO.SearchTerm
	filter.Page = filterDTO.Page
	filter.PageSize = filterDTO.PageSize
	if filterDTO.HeadOfficeID != nil {
		filter.Filter["headOfficeId"] = filterDTO.HeadOfficeID.String()
	}
	if filterDTO.City != "" {
		filter.Filter["city"] = filterDTO.City
	}

	return s.branchRepo.List(ctx, s.db, filter)
}

func (s *BranchOfficeService) GetByID(ctx context.Context, id uuid.UUID) (*dto.BranchOfficeDetailDTO, error) {
	office, err := s.branchRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.BranchOfficeDetailDTO{BranchOffice: *office}

	head, err := s.headOfficeRepo.FindByID(ctx, s.db, office.HeadOfficeID)
	if err == nil {
		detail.HeadOffice = &dto.ShortHeadOfficeDTO{ID: head.ID, Name: head.Name, City: head.City}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return detail, nil
}

func (s *BranchOfficeService) Create(ctx context.Context, createDTO dto.CreateBranchOfficeDTO, mctx MutationContext) (*entities.BranchOffice, error) {
	office, err := s.pipeline.Create(ctx, &createDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Филиал создан", zap.String("id", office.ID.String()))
	return office, nil
}

func (s *BranchOfficeService) Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateBranchOfficeDTO, mctx MutationContext) (*entities.BranchOffice, error) {
	office, err := s.pipeline.Update(ctx, id, &updateDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Филиал обновлён", zap.String("id", office.ID.String()))
	return office, nil
}

func (s *BranchOfficeService) Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error {
	if err := s.pipeline.Delete(ctx, id, mctx); err != nil {
		return err
	}
	s.logger.Info("Филиал удалён", zap.String("id", id.String()))
	return nil
}
