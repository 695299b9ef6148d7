package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Storage is the Postgres-backed entity store.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// setBuilder collects SET fragments for partial updates. Positional
// placeholders start at $1; the caller appends WHERE args after.
type setBuilder struct {
	cols []string
	args []interface{}
}

func (b *setBuilder) add(col string, v interface{}) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) arg(v interface{}) int {
	b.args = append(b.args, v)
	return len(b.args)
}
