package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	QueryKeyPage     = "page"
	QueryKeyPageSize = "page_size"
	QueryKeyOrderBy  = "order_by"
)

// QueryParams параметры пагинации и сортировки списка шаблонов.
// Передаются в API без изменений; нулевые значения не передаются.
type QueryParams struct {
	Page     int
	PageSize int
	OrderBy  string
	Filters  url.Values // Произвольные фильтры (name__icontains, notification_type и т.д.)
}

// ParseQueryParams разбирает query string в QueryParams
func ParseQueryParams(values url.Values) (QueryParams, error) {
	var params QueryParams

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}

		switch key {
		case QueryKeyPage:
			page, err := strconv.Atoi(vals[0])
			if err != nil || page < 1 {
				return QueryParams{}, fmt.Errorf("invalid page: %s", vals[0])
			}
			params.Page = page
		case QueryKeyPageSize:
			size, err := strconv.Atoi(vals[0])
			if err != nil || size < 1 {
				return QueryParams{}, fmt.Errorf("invalid page_size: %s", vals[0])
			}
			params.PageSize = size
		case QueryKeyOrderBy:
			params.OrderBy = vals[0]
		default:
			if params.Filters == nil {
				params.Filters = url.Values{}
			}
			params.Filters[key] = append([]string(nil), vals...)
		}
	}

	return params, nil
}

// Values возвращает параметры в виде url.Values
func (p QueryParams) Values() url.Values {
	values := url.Values{}
	for key, vals := range p.Filters {
		values[key] = append([]string(nil), vals...)
	}

	if p.Page > 0 {
		values.Set(QueryKeyPage, strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		values.Set(QueryKeyPageSize, strconv.Itoa(p.PageSize))
	}
	if p.OrderBy != "" {
		values.Set(QueryKeyOrderBy, p.OrderBy)
	}

	return values
}

// Encode возвращает каноничную query string (ключи отсортированы)
func (p QueryParams) Encode() string {
	return p.Values().Encode()
}

// Equal сравнивает параметры по каноничному представлению
func (p QueryParams) Equal(other QueryParams) bool {
	return p.Encode() == other.Encode()
}

// Clone возвращает копию параметров с независимыми фильтрами
func (p QueryParams) Clone() QueryParams {
	clone := p
	if p.Filters != nil {
		clone.Filters = make(url.Values, len(p.Filters))
		for key, vals := range p.Filters {
			clone.Filters[key] = append([]string(nil), vals...)
		}
	}
	return clone
}
