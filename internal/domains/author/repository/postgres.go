package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/internal/shared/utils"
)

const (
	emailConstraint = "authors_email_lower_key"
	authorColumns   = "id, name, birth_date, email, phone, biography, url_picture"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanAuthor(row pgx.Row) (model.Author, error) {
	var (
		a     model.Author
		birth *time.Time
	)
	err := row.Scan(&a.ID, &a.Name, &birth, &a.Email, &a.Phone, &a.Biography, &a.URLPicture)
	a.BirthDate = birth
	return a, err
}

func collectAuthor(row pgx.CollectableRow) (model.Author, error) {
	return scanAuthor(row)
}

// ════════════════════════════════════════════════════════════════
// LIST QUERIES
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.Author], error) {
	return r.list(ctx, "", nil, page)
}

func (r *postgresRepository) FindByNameContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Author], error) {
	return r.list(ctx, `WHERE name ILIKE $1 ESCAPE '\'`, []any{utils.ContainsPattern(text)}, page)
}

// list runs the page query and the count concurrently
func (r *postgresRepository) list(ctx context.Context, where string, args []any, page pagination.PageRequest) (pagination.Page[model.Author], error) {
	var (
		items []model.Author
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := fmt.Sprintf(
			"SELECT %s FROM authors %s ORDER BY id LIMIT $%d OFFSET $%d",
			authorColumns, where, len(args)+1, len(args)+2,
		)
		rows, err := r.pool.Query(gctx, query, append(append([]any{}, args...), page.Limit(), page.Offset())...)
		if err != nil {
			return fmt.Errorf("query authors: %w", err)
		}
		items, err = pgx.CollectRows(rows, collectAuthor)
		if err != nil {
			return fmt.Errorf("scan authors: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, "SELECT COUNT(*) FROM authors "+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("count authors: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return pagination.Page[model.Author]{}, err
	}

	return pagination.NewPage(items, page, total), nil
}

// ════════════════════════════════════════════════════════════════
// SINGLE LOOKUPS
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Author, bool, error) {
	return r.findOne(ctx, "SELECT "+authorColumns+" FROM authors WHERE id = $1", id)
}

func (r *postgresRepository) FindByEmailIgnoreCase(ctx context.Context, email string) (*model.Author, bool, error) {
	return r.findOne(ctx, "SELECT "+authorColumns+" FROM authors WHERE lower(email) = lower($1)", email)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*model.Author, bool, error) {
	a, err := scanAuthor(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find author: %w", err)
	}
	return &a, true, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Author, error) {
	if len(ids) == 0 {
		return []model.Author{}, nil
	}

	rows, err := r.pool.Query(ctx, "SELECT "+authorColumns+" FROM authors WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("query authors by ids: %w", err)
	}
	authors, err := pgx.CollectRows(rows, collectAuthor)
	if err != nil {
		return nil, fmt.Errorf("scan authors by ids: %w", err)
	}
	return authors, nil
}

// ════════════════════════════════════════════════════════════════
// WRITES
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Create(ctx context.Context, author *model.Author) (*model.Author, error) {
	query := `
		INSERT INTO authors (name, birth_date, email, phone, biography, url_picture)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	created := *author
	err := r.pool.QueryRow(ctx, query,
		author.Name, author.BirthDate, author.Email, author.Phone, author.Biography, author.URLPicture,
	).Scan(&created.ID)
	if err != nil {
		return nil, mapWriteError(err, author)
	}

	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, author *model.Author) (*model.Author, error) {
	query := `
		UPDATE authors
		SET name = $1, birth_date = $2, email = $3, phone = $4, biography = $5, url_picture = $6,
		    updated_at = NOW()
		WHERE id = $7`

	tag, err := r.pool.Exec(ctx, query,
		author.Name, author.BirthDate, author.Email, author.Phone, author.Biography, author.URLPicture, author.ID,
	)
	if err != nil {
		return nil, mapWriteError(err, author)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NotFound("author", author.ID)
	}

	updated := *author
	return &updated, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperror.ConflictingReference("author", id, "it is still linked to at least one book")
		}
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("author", id)
	}
	return nil
}

// mapWriteError turns constraint violations into taxonomy errors.
// The unique index is the final word on e-mail uniqueness.
func mapWriteError(err error, author *model.Author) error {
	if database.IsUniqueViolation(err, emailConstraint) {
		return apperror.DuplicateEmail(author.Email)
	}
	return fmt.Errorf("write author: %w", err)
}
