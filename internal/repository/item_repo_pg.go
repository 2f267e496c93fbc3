package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	SetAvailable(ctx context.Context, id int64, available bool) (*domain.Item, error)
}

type PGItemRepository struct {
	db *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) ItemRepository {
	return &PGItemRepository{db: db}
}

func (r *PGItemRepository) Create(ctx context.Context, item *domain.Item) error {
	err := r.db.QueryRow(ctx, `INSERT INTO items (name, description, available, owner_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		item.Name, item.Description, item.Available, item.OwnerID).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *PGItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, description, available, owner_id FROM items WHERE id=$1`, id)
	var it domain.Item
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("item %d not found", id)
		}
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return &it, nil
}

func (r *PGItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, available, owner_id FROM items WHERE owner_id=$1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items of owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGItemRepository) SetAvailable(ctx context.Context, id int64, available bool) (*domain.Item, error) {
	res, err := r.db.Exec(ctx, `UPDATE items SET available=$1 WHERE id=$2`, available, id)
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	if res.RowsAffected() == 0 {
		return nil, domain.NotFound("item %d not found", id)
	}
	return r.GetByID(ctx, id)
}

var _ ItemRepository = (*PGItemRepository)(nil)
