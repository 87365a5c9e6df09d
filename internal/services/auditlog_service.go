package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type AuditLogServiceInterface interface {
	List(ctx context.Context, filterDTO dto.AuditLogFilterDTO) ([]entities.AuditLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AuditLog, error)
	ExportXLSX(ctx context.Context) (*excelize.File, error)
}

type AuditLogService struct {
	db           repositories.Querier
	auditLogRepo repositories.AuditLogRepositoryInterface
}

func NewAuditLogService(db repositories.Querier, auditLogRepo repositories.AuditLogRepositoryInterface) AuditLogServiceInterface {
	return &AuditLogService{db: db, auditLogRepo: auditLogRepo}
}

func (s *AuditLogService) List(ctx context.Context, filterDTO dto.AuditLogFilterDTO) ([]entities.AuditLog, error) {
	filter := types.NewFilter()
	filter.Page = filterDTO.Page
	filter.PageSize = filterDTO.PageSize

	return s.auditLogRepo.List(ctx, s.db, filter)
}

func (s *AuditLogService) GetByID(ctx context.Context, id uuid.UUID) (*entities.AuditLog, error) {
	return s.auditLogRepo.FindByID(ctx, s.db, id)
}

// ExportXLSX выгружает весь журнал аудита в книгу Excel, новые записи
// первыми.
func (s *AuditLogService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	logs, err := s.auditLogRepo.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Журнал аудита"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании листа: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("ошибка при удалении листа по умолчанию: %w", err)
	}

	headers := []interface{}{
		"ID", "Действие", "Сущность", "ID сущности", "ID пользователя",
		"Было", "Стало", "Время", "IP-адрес",
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("ошибка при записи заголовка: %w", err)
	}

	for i, log := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := []interface{}{
			log.ID.String(),
			log.Action,
			log.EntityType,
			uuidOrEmpty(log.EntityID),
			uuidOrEmpty(log.UserID),
			string(log.OldValues),
			string(log.NewValues),
			log.Timestamp.Format("2006-01-02 15:04:05"),
			stringOrEmpty(log.IPAddress),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("ошибка при записи строки отчёта: %w", err)
		}
	}

	return f, nil
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
