package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	authormodel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/pagination"
	"book-catalog/internal/shared/utils"
	pkgdb "book-catalog/pkg/database"
)

const (
	isbnConstraint = "books_isbn_key"
	bookColumns    = "b.id, b.isbn, b.title, b.print_length, b.language, b.publication_year, b.publisher, b.url_cover, b.synopsis, b.genre"
)

var missingAuthorDetail = regexp.MustCompile(`\(author_id\)=\((\d+)\)`)

// PostgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (model.Book, error) {
	var (
		b     model.Book
		genre *int16
	)
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.PrintLength, &b.Language, &b.PublicationYear,
		&b.Publisher, &b.URLCover, &b.Synopsis, &genre,
	)
	if genre != nil {
		g := model.Genre(*genre)
		b.Genre = &g
	}
	return b, err
}

func collectBook(row pgx.CollectableRow) (model.Book, error) {
	return scanBook(row)
}

// ════════════════════════════════════════════════════════════════
// LIST QUERIES
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) FindAll(ctx context.Context, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.list(ctx, "", nil, page)
}

func (r *postgresRepository) FindByTitleContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.list(ctx, `WHERE b.title ILIKE $1 ESCAPE '\'`, []any{utils.ContainsPattern(text)}, page)
}

func (r *postgresRepository) FindByLanguageContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.list(ctx, `WHERE b.language ILIKE $1 ESCAPE '\'`, []any{utils.ContainsPattern(text)}, page)
}

func (r *postgresRepository) FindByPublisherContaining(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	return r.list(ctx, `WHERE b.publisher ILIKE $1 ESCAPE '\'`, []any{utils.ContainsPattern(text)}, page)
}

func (r *postgresRepository) FindByAuthorName(ctx context.Context, text string, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	where := `WHERE EXISTS (
		SELECT 1 FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = b.id AND a.name ILIKE $1 ESCAPE '\'
	)`
	return r.list(ctx, where, []any{utils.ContainsPattern(text)}, page)
}

// list runs the page query and the count concurrently, then loads
// authors for the whole page in one query
func (r *postgresRepository) list(ctx context.Context, where string, args []any, page pagination.PageRequest) (pagination.Page[model.Book], error) {
	var (
		books []model.Book
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := fmt.Sprintf(
			"SELECT %s FROM books b %s ORDER BY b.id LIMIT $%d OFFSET $%d",
			bookColumns, where, len(args)+1, len(args)+2,
		)
		rows, err := r.pool.Query(gctx, query, append(append([]any{}, args...), page.Limit(), page.Offset())...)
		if err != nil {
			return fmt.Errorf("query books: %w", err)
		}
		books, err = pgx.CollectRows(rows, collectBook)
		if err != nil {
			return fmt.Errorf("scan books: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.pool.QueryRow(gctx, "SELECT COUNT(*) FROM books b "+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return pagination.Page[model.Book]{}, err
	}

	if err := r.attachAuthors(ctx, books); err != nil {
		return pagination.Page[model.Book]{}, err
	}

	return pagination.NewPage(books, page, total), nil
}

// attachAuthors fills Authors of every book with a single join query
func (r *postgresRepository) attachAuthors(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]int64, len(books))
	index := make(map[int64]int, len(books))
	for i := range books {
		ids[i] = books[i].ID
		index[books[i].ID] = i
		books[i].Authors = []authormodel.Author{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ba.book_id, a.id, a.name, a.birth_date, a.email, a.phone, a.biography, a.url_picture
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY ba.book_id, ba.position`, ids)
	if err != nil {
		return fmt.Errorf("query book authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookID int64
			a      authormodel.Author
			birth  *time.Time
		)
		if err := rows.Scan(&bookID, &a.ID, &a.Name, &birth, &a.Email, &a.Phone, &a.Biography, &a.URLPicture); err != nil {
			return fmt.Errorf("scan book author: %w", err)
		}
		a.BirthDate = birth
		if i, ok := index[bookID]; ok {
			books[i].Authors = append(books[i].Authors, a)
		}
	}

	return rows.Err()
}

// ════════════════════════════════════════════════════════════════
// SINGLE LOOKUPS
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, bool, error) {
	return r.findOne(ctx, "SELECT "+bookColumns+" FROM books b WHERE b.id = $1", id)
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, bool, error) {
	return r.findOne(ctx, "SELECT "+bookColumns+" FROM books b WHERE b.isbn = $1", isbn)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*model.Book, bool, error) {
	b, err := scanBook(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find book: %w", err)
	}

	books := []model.Book{b}
	if err := r.attachAuthors(ctx, books); err != nil {
		return nil, false, err
	}
	return &books[0], true, nil
}

// ════════════════════════════════════════════════════════════════
// WRITES (transactional)
// ════════════════════════════════════════════════════════════════

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Book, error) {
		created := *book

		err := tx.QueryRow(ctx, `
			INSERT INTO books (isbn, title, print_length, language, publication_year, publisher, url_cover, synopsis, genre)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			book.ISBN, book.Title, book.PrintLength, book.Language, book.PublicationYear,
			book.Publisher, book.URLCover, book.Synopsis, genreParam(book.Genre),
		).Scan(&created.ID)
		if err != nil {
			return nil, mapWriteError(err, book)
		}

		if err := insertLinks(ctx, tx, created.ID, book.AuthorIDs()); err != nil {
			return nil, err
		}

		return &created, nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Book, error) {
		tag, err := tx.Exec(ctx, `
			UPDATE books
			SET isbn = $1, title = $2, print_length = $3, language = $4, publication_year = $5,
			    publisher = $6, url_cover = $7, synopsis = $8, genre = $9, updated_at = NOW()
			WHERE id = $10`,
			book.ISBN, book.Title, book.PrintLength, book.Language, book.PublicationYear,
			book.Publisher, book.URLCover, book.Synopsis, genreParam(book.Genre), book.ID,
		)
		if err != nil {
			return nil, mapWriteError(err, book)
		}
		if tag.RowsAffected() == 0 {
			return nil, apperror.NotFound("book", book.ID)
		}

		// Author set is replaced wholesale
		if _, err := tx.Exec(ctx, "DELETE FROM book_authors WHERE book_id = $1", book.ID); err != nil {
			return nil, fmt.Errorf("clear book authors: %w", err)
		}
		if err := insertLinks(ctx, tx, book.ID, book.AuthorIDs()); err != nil {
			return nil, err
		}

		updated := *book
		return &updated, nil
	})
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) error {
	// book_authors rows go with the book (ON DELETE CASCADE)
	tag, err := r.pool.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("book", id)
	}
	return nil
}

func insertLinks(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	batch := &pgx.Batch{}
	for pos, authorID := range authorIDs {
		batch.Queue(
			"INSERT INTO book_authors (book_id, author_id, position) VALUES ($1, $2, $3)",
			bookID, authorID, pos,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range authorIDs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapLinkError(err)
		}
	}
	return results.Close()
}

func genreParam(g *model.Genre) *int16 {
	if g == nil {
		return nil
	}
	v := int16(*g)
	return &v
}

func mapWriteError(err error, book *model.Book) error {
	if database.IsUniqueViolation(err, isbnConstraint) {
		return apperror.DuplicateISBN(book.ISBN)
	}
	return fmt.Errorf("write book: %w", err)
}

// mapLinkError reports an author removed between resolution and insert
func mapLinkError(err error) error {
	if database.IsForeignKeyViolation(err) {
		if m := missingAuthorDetail.FindStringSubmatch(database.PgErrorDetail(err)); m != nil {
			if id, convErr := strconv.ParseInt(m[1], 10, 64); convErr == nil {
				return apperror.AuthorNotFound(id)
			}
		}
		return apperror.New(apperror.ErrAuthorNotFound, "a referenced author was not found")
	}
	return fmt.Errorf("link book author: %w", err)
}
