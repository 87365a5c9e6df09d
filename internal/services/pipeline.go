package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
)

// MutationContext — кто и откуда выполняет мутацию.
type MutationContext struct {
	ActorID *uuid.UUID
	IP      *string
}

// EntityDescriptor описывает одну сущность для общего конвейера
// мутаций: как её найти, создать из DTO, наложить изменения и
// проверить ссылки. Сам конвейер один на все сущности.
type EntityDescriptor[E any, C any, U any] struct {
	EntityType string

	ID     func(e *E) uuid.UUID
	Find   func(ctx context.Context, q repositories.Querier, id uuid.UUID) (*E, error)
	Insert func(ctx context.Context, q repositories.Querier, e *E) error
	Update func(ctx context.Context, q repositories.Querier, e *E) error
	Delete func(ctx context.Context, q repositories.Querier, id uuid.UUID) error

	// New строит новую сущность из DTO создания (идентификатор и
	// created_at выставляет сам).
	New func(c *C) *E
	// Apply накладывает DTO обновления на копию загруженной сущности
	// и выставляет updated_at.
	Apply func(e *E, u *U) error

	// Необязательные проверки ссылок перед записью: несуществующий
	// предок — это 400, а не ошибка БД.
	CheckCreateRefs func(ctx context.Context, q repositories.Querier, c *C) error
	CheckUpdateRefs func(ctx context.Context, q repositories.Querier, e *E, u *U) error

	// BeforeInsert выполняется в той же транзакции между New и Insert:
	// место для сопутствующих записей (например, учётной записи
	// сотрудника).
	BeforeInsert func(ctx context.Context, q repositories.Querier, c *C, e *E) error

	// BeforeDelete выполняется до удаления: запрет при зависимых
	// записях или каскад на связанные.
	BeforeDelete func(ctx context.Context, q repositories.Querier, e *E, mctx MutationContext) error
}

// Pipeline — общий конвейер Create/Update/Delete: одна транзакция,
// ровно одна запись аудита на мутацию.
type Pipeline[E any, C any, U any] struct {
	desc  EntityDescriptor[E, C, U]
	tx    repositories.TxManagerInterface
	audit AuditRecorderInterface
}

func NewPipeline[E any, C any, U any](desc EntityDescriptor[E, C, U], tx repositories.TxManagerInterface, audit AuditRecorderInterface) *Pipeline[E, C, U] {
	return &Pipeline[E, C, U]{desc: desc, tx: tx, audit: audit}
}

func (p *Pipeline[E, C, U]) Create(ctx context.Context, createDTO *C, mctx MutationContext) (*E, error) {
	var created *E
	err := p.tx.RunInTransaction(ctx, func(q repositories.Querier) error {
		if p.desc.CheckCreateRefs != nil {
			if err := p.desc.CheckCreateRefs(ctx, q, createDTO); err != nil {
				return err
			}
		}

		entity := p.desc.New(createDTO)
		if p.desc.BeforeInsert != nil {
			if err := p.desc.BeforeInsert(ctx, q, createDTO, entity); err != nil {
				return err
			}
		}
		if err := p.desc.Insert(ctx, q, entity); err != nil {
			return err
		}

		id := p.desc.ID(entity)
		if err := p.audit.Record(ctx, q, entities.AuditActionCreate, p.desc.EntityType, &id, mctx.ActorID, nil, entity, mctx.IP); err != nil {
			return err
		}

		created = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (p *Pipeline[E, C, U]) Update(ctx context.Context, id uuid.UUID, updateDTO *U, mctx MutationContext) (*E, error) {
	var updated *E
	err := p.tx.RunInTransaction(ctx, func(q repositories.Querier) error {
		old, err := p.desc.Find(ctx, q, id)
		if err != nil {
			return err
		}

		if p.desc.CheckUpdateRefs != nil {
			if err := p.desc.CheckUpdateRefs(ctx, q, old, updateDTO); err != nil {
				return err
			}
		}

		// Копия, чтобы снимок "до" пережил наложение изменений.
		next := *old
		if err := p.desc.Apply(&next, updateDTO); err != nil {
			return err
		}
		if err := p.desc.Update(ctx, q, &next); err != nil {
			return err
		}

		if err := p.audit.Record(ctx, q, entities.AuditActionUpdate, p.desc.EntityType, &id, mctx.ActorID, old, &next, mctx.IP); err != nil {
			return err
		}

		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (p *Pipeline[E, C, U]) Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error {
	return p.tx.RunInTransaction(ctx, func(q repositories.Querier) error {
		old, err := p.desc.Find(ctx, q, id)
		if err != nil {
			return err
		}

		if p.desc.BeforeDelete != nil {
			if err := p.desc.BeforeDelete(ctx, q, old, mctx); err != nil {
				return err
			}
		}

		if err := p.desc.Delete(ctx, q, id); err != nil {
			return err
		}

		return p.audit.Record(ctx, q, entities.AuditActionDelete, p.desc.EntityType, &id, mctx.ActorID, old, nil, mctx.IP)
	})
}
