package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

// ListSpec описывает, как строится выборка списка для одной сущности:
// таблица, читаемые колонки, колонки текстового поиска, допустимые
// точные фильтры и канонический порядок сортировки.
type ListSpec struct {
	Table         string
	Columns       []string
	SearchColumns []string
	// FilterMap: внешнее имя фильтра -> колонка таблицы. Всё, чего
	// здесь нет, в SQL не попадает.
	FilterMap map[string]string
	SortBy    string
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// BuildListQuery собирает SELECT по описанию сущности: ILIKE-поиск по
// SearchColumns (через OR), точные совпадения по FilterMap, фиксированная
// сортировка и постраничное окно. Общее число строк не считается.
func BuildListQuery(spec ListSpec, filter types.Filter) (string, []any, error) {
	filter.Normalize()

	qb := psql.Select(spec.Columns...).From(spec.Table)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		or := sq.Or{}
		for _, col := range spec.SearchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		if len(or) > 0 {
			qb = qb.Where(or)
		}
	}

	for name, value := range filter.Filter {
		col, ok := spec.FilterMap[name]
		if !ok {
			continue
		}
		qb = qb.Where(sq.Eq{col: value})
	}

	qb = qb.OrderBy(spec.SortBy).
		Limit(uint64(filter.PageSize)).
		Offset(uint64(filter.Offset()))

	return qb.ToSql()
}

// queryList выполняет собранный по описанию запрос и сканирует
// строки через переданную функцию.
func queryList[T any](ctx context.Context, q Querier, spec ListSpec, filter types.Filter, scan func(row pgx.CollectableRow) (T, error)) ([]T, error) {
	query, args, err := BuildListQuery(spec, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка при сборке запроса %s: %w", spec.Table, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выборке %s: %w", spec.Table, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, scan)
}
