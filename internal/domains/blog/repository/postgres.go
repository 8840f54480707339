package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bloghub-backend/internal/domains/blog/model"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// =====================================================
// SUBMISSION REPOSITORY (POSTGRES)
// =====================================================

type postgresSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &postgresSubmissionRepository{pool: pool}
}

const submissionColumns = `
	id, request_id, signature,
	title, content, excerpt, category, tags, image_url,
	author_name, author_email,
	status, created_at, resolved_at
`

func scanSubmission(row pgx.Row) (*model.Submission, error) {
	sub := &model.Submission{}
	var tags []string

	err := row.Scan(
		&sub.ID,
		&sub.RequestID,
		&sub.Signature,
		&sub.Title,
		&sub.Content,
		&sub.Excerpt,
		&sub.Category,
		pq.Array(&tags),
		&sub.ImageURL,
		&sub.AuthorName,
		&sub.AuthorEmail,
		&sub.Status,
		&sub.CreatedAt,
		&sub.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.Tags = tags
	return sub, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresSubmissionRepository) Insert(ctx context.Context, sub *model.Submission) error {
	query := `
		INSERT INTO blog_submissions (
			id, request_id, signature,
			title, content, excerpt, category, tags, image_url,
			author_name, author_email,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		sub.ID,
		sub.RequestID,
		sub.Signature,
		sub.Title,
		sub.Content,
		sub.Excerpt,
		sub.Category,
		pq.Array(sub.Tags),
		sub.ImageURL,
		sub.AuthorName,
		sub.AuthorEmail,
		sub.Status,
		sub.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateRequestID
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

func (r *postgresSubmissionRepository) UpsertByRequestID(ctx context.Context, sub *model.Submission) (*model.Submission, bool, error) {
	if sub.RequestID == nil {
		return nil, false, fmt.Errorf("upsert requires a request id")
	}

	// ON CONFLICT DO NOTHING keeps the first writer's row untouched;
	// RETURNING emits a row only when this statement inserted one.
	query := `
		INSERT INTO blog_submissions (
			id, request_id, signature,
			title, content, excerpt, category, tags, image_url,
			author_name, author_email,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (request_id) DO NOTHING
		RETURNING ` + submissionColumns

	row := r.pool.QueryRow(ctx, query,
		sub.ID,
		sub.RequestID,
		sub.Signature,
		sub.Title,
		sub.Content,
		sub.Excerpt,
		sub.Category,
		pq.Array(sub.Tags),
		sub.ImageURL,
		sub.AuthorName,
		sub.AuthorEmail,
		sub.Status,
		sub.CreatedAt,
	)

	inserted, err := scanSubmission(row)
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to upsert submission: %w", err)
	}

	// Conflict path: an earlier request with this id already exists.
	existing, err := r.FindByRequestID(ctx, *sub.RequestID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// =====================================================
// LOOKUPS
// =====================================================

func (r *postgresSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM blog_submissions
		WHERE id = $1
	`

	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return sub, nil
}

func (r *postgresSubmissionRepository) FindByRequestID(ctx context.Context, requestID string) (*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM blog_submissions
		WHERE request_id = $1
	`

	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission by request id: %w", err)
	}

	return sub, nil
}

func (r *postgresSubmissionRepository) FindRecentBySignature(ctx context.Context, signature string, since time.Time) (*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM blog_submissions
		WHERE signature = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, signature, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission by signature: %w", err)
	}

	return sub, nil
}

func (r *postgresSubmissionRepository) FindRecentByContent(ctx context.Context, authorEmail, title, content, excerpt string, since time.Time) (*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM blog_submissions
		WHERE author_email = $1
		  AND title = $2
		  AND content = $3
		  AND excerpt = $4
		  AND created_at >= $5
		ORDER BY created_at DESC
		LIMIT 1
	`

	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, authorEmail, title, content, excerpt, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission by content: %w", err)
	}

	return sub, nil
}

// =====================================================
// STATE TRANSITION
// =====================================================

func (r *postgresSubmissionRepository) Transition(ctx context.Context, id uuid.UUID, target model.SubmissionStatus) (*model.Submission, error) {
	// Compare-and-set: only a still-pending row can move to a terminal
	// state, so concurrent moderators cannot double-resolve.
	query := `
		UPDATE blog_submissions
		SET status = $2, resolved_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + submissionColumns

	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id, target))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to transition submission: %w", err)
	}

	return sub, nil
}

// =====================================================
// LISTS AND COUNTS
// =====================================================

func (r *postgresSubmissionRepository) ListByStatus(ctx context.Context, status model.SubmissionStatus) ([]*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM blog_submissions
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func (r *postgresSubmissionRepository) ListUnresolvedByAuthor(ctx context.Context, authorEmail string) ([]*model.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM blog_submissions
		WHERE author_email = $1 AND status != 'approved'
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, authorEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list author submissions: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func collectSubmissions(rows pgx.Rows) ([]*model.Submission, error) {
	var subs []*model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return subs, nil
}

func (r *postgresSubmissionRepository) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int, error) {
	query := `SELECT COUNT(*) FROM blog_submissions WHERE status = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	return count, nil
}

// =====================================================
// RETENTION
// =====================================================

func (r *postgresSubmissionRepository) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM blog_submissions
		WHERE status = 'rejected' AND resolved_at < $1
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge rejected submissions: %w", err)
	}

	return result.RowsAffected(), nil
}

// =====================================================
// PUBLISHED REPOSITORY (POSTGRES)
// =====================================================

type postgresPublishedRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPublishedRepository(pool *pgxpool.Pool) PublishedRepository {
	return &postgresPublishedRepository{pool: pool}
}

const publishedColumns = `
	id, submission_id,
	title, content, excerpt, category, tags, image_url,
	author_name, author_email,
	likes, submitted_at, published_at
`

func scanPublished(row pgx.Row) (*model.PublishedPost, error) {
	post := &model.PublishedPost{}
	var tags []string

	err := row.Scan(
		&post.ID,
		&post.SubmissionID,
		&post.Title,
		&post.Content,
		&post.Excerpt,
		&post.Category,
		pq.Array(&tags),
		&post.ImageURL,
		&post.AuthorName,
		&post.AuthorEmail,
		&post.Likes,
		&post.SubmittedAt,
		&post.PublishedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Tags = tags
	return post, nil
}

func (r *postgresPublishedRepository) Insert(ctx context.Context, post *model.PublishedPost) error {
	query := `
		INSERT INTO published_posts (
			id, submission_id,
			title, content, excerpt, category, tags, image_url,
			author_name, author_email,
			likes, submitted_at, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.SubmissionID,
		post.Title,
		post.Content,
		post.Excerpt,
		post.Category,
		pq.Array(post.Tags),
		post.ImageURL,
		post.AuthorName,
		post.AuthorEmail,
		post.Likes,
		post.SubmittedAt,
		post.PublishedAt,
	)

	if err != nil {
		// submission_id carries a unique index, so a concurrent approve
		// of the same submission lands here.
		if isUniqueViolation(err) {
			return model.ErrAlreadyPublished
		}
		return fmt.Errorf("failed to insert published post: %w", err)
	}

	return nil
}

func (r *postgresPublishedRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PublishedPost, error) {
	query := `
		SELECT ` + publishedColumns + `
		FROM published_posts
		WHERE id = $1
	`

	post, err := scanPublished(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get published post: %w", err)
	}

	return post, nil
}

func (r *postgresPublishedRepository) FindBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*model.PublishedPost, error) {
	query := `
		SELECT ` + publishedColumns + `
		FROM published_posts
		WHERE submission_id = $1
	`

	post, err := scanPublished(r.pool.QueryRow(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get published post by submission: %w", err)
	}

	return post, nil
}

func (r *postgresPublishedRepository) List(ctx context.Context) ([]*model.PublishedPost, error) {
	query := `
		SELECT ` + publishedColumns + `
		FROM published_posts
		ORDER BY published_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.PublishedPost
	for rows.Next() {
		post, err := scanPublished(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan published post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read published posts: %w", err)
	}

	return posts, nil
}

func (r *postgresPublishedRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE published_posts
		SET likes = likes + 1
		WHERE id = $1
		RETURNING likes
	`

	var likes int
	err := r.pool.QueryRow(ctx, query, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}

	return likes, nil
}
