package lists

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/dbx"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the Postgres SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

// listSelect loads a list with its invited ids and its items as a JSON array
// in one row.
const listSelect = `SELECT l.id, l.user_id, l.title, l.icon, l.created_at, l.updated_at,
		COALESCE(string_agg(i.user_id::text, ',' ORDER BY i.user_id::text), ''),
		COALESCE((SELECT json_agg(json_build_object(
				'id', it.id, 'name', it.name, 'category', it.category, 'unit', it.unit,
				'quantity', it.quantity, 'price', it.price,
				'isFavorite', it.is_favorite, 'isPinned', it.is_pinned, 'isCrossedOff', it.is_crossed_off,
				'createdAt', it.created_at, 'updatedAt', it.updated_at)
				ORDER BY it.created_at, it.id)
			FROM list_items it WHERE it.list_id = l.id), '[]')
	FROM lists l
	LEFT JOIN list_invited i ON i.list_id = l.id`

// PostgresRepository implements list storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	query :=
		`INSERT INTO lists (user_id, title, icon)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, list.UserID, list.Title, list.Icon).
		Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if list.Invited == nil {
		list.Invited = []string{}
	}
	if list.Items == nil {
		list.Items = []models.Item{}
	}

	return list, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	query := listSelect + ` WHERE l.id = $1 GROUP BY l.id`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.List, error) {
	query := listSelect + ` WHERE l.id = $1 AND l.user_id = $2 GROUP BY l.id`
	return r.getOne(ctx, query, id, ownerID)
}

func (r *PostgresRepository) ListByMember(ctx context.Context, userID string) ([]*models.List, error) {
	query := listSelect + `
	WHERE l.user_id = $1
	   OR EXISTS (SELECT 1 FROM list_invited m WHERE m.list_id = l.id AND m.user_id = $1)
	GROUP BY l.id
	ORDER BY l.created_at`
	return r.getMany(ctx, query, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.List, error) {
	query := listSelect + ` GROUP BY l.id ORDER BY l.created_at`
	return r.getMany(ctx, query)
}

func (r *PostgresRepository) Update(ctx context.Context, list *models.List) error {
	query :=
		`UPDATE lists SET title = $2, icon = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, list.ID, list.Title, list.Icon).Scan(&list.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) AddInvited(ctx context.Context, listID, userID string) error {
	query :=
		`INSERT INTO list_invited (list_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveInvited(ctx context.Context, listID, userID string) error {
	query := `DELETE FROM list_invited WHERE list_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, listID string, item *models.Item) error {
	query :=
		`INSERT INTO list_items (list_id, name, category, unit, quantity, price, is_favorite, is_pinned, is_crossed_off)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, listID, item.Name, item.Category, item.Unit,
		item.Quantity, item.Price, item.IsFavorite, item.IsPinned, item.IsCrossedOff).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, listID string, item *models.Item) error {
	query :=
		`UPDATE list_items SET name = $3, category = $4, unit = $5, quantity = $6, price = $7,
		 is_favorite = $8, is_pinned = $9, is_crossed_off = $10, updated_at = now()
		 WHERE id = $1 AND list_id = $2
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, item.ID, listID, item.Name, item.Category, item.Unit,
		item.Quantity, item.Price, item.IsFavorite, item.IsPinned, item.IsCrossedOff).
		Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, listID, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM list_items WHERE id = $1 AND list_id = $2`, itemID, listID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.List, error) {
	l, err := scanList(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) getMany(ctx context.Context, query string, args ...any) ([]*models.List, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select lists: %w", err)
	}
	defer rows.Close()

	result := make([]*models.List, 0)
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanList(s scanner) (*models.List, error) {
	var (
		l       models.List
		invited string
		items   []byte
	)
	if err := s.Scan(&l.ID, &l.UserID, &l.Title, &l.Icon, &l.CreatedAt, &l.UpdatedAt, &invited, &items); err != nil {
		return nil, err
	}
	l.Invited = splitIDs(invited)
	if err := json.Unmarshal(items, &l.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if l.Items == nil {
		l.Items = []models.Item{}
	}
	return &l, nil
}

func splitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
