package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool

	gens *GenerationsRepo
}

func New(pool *pgxpool.Pool) *Store {
	s := &Store{pool: pool}
	s.gens = &GenerationsRepo{pool: pool}
	return s
}

func (s *Store) Generations() *GenerationsRepo { return s.gens }
