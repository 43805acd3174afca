package core

import (
	"math"

	"github.com/volatiletech/strmangle"
	"gorm.io/gorm/schema"
)

var columnNamer = schema.NamingStrategy{}

type DBOrdering struct {
	Field     string
	Ascending bool
}

// Column returns the snake_case column name of a camelCase API field.
func (ord DBOrdering) Column() string {
	return columnNamer.ColumnName("", ord.Field)
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return strmangle.IdentQuote('"', '"', ord.Column()) + " " + direction
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Clean applies the default page & limit.
func (q *PageQuery) Clean() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(q PageQuery, total int64) Pagination {
	return Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}
