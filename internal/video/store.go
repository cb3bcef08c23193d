package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/database"
	"github.com/hbomb79/Tubely/pkg/logger"
)

var ErrVideoNotFound = errors.New("video does not exist")

var log = logger.Get("VideoStore")

type (
	// Video is the metadata record for a single uploaded video. The
	// URLs remain nil until the matching asset has been published.
	Video struct {
		ID           uuid.UUID `db:"id" json:"id"`
		UserID       uuid.UUID `db:"user_id" json:"user_id"`
		Title        string    `db:"title" json:"title"`
		Description  string    `db:"description" json:"description"`
		VideoURL     *string   `db:"video_url" json:"video_url"`
		ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url"`
		CreatedAt    time.Time `db:"created_at" json:"created_at"`
		UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	}

	Store struct{}
)

// psql is the statement builder used for all queries in this store, which
// emits postgres-style ($n) placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func NewStore() *Store {
	return &Store{}
}

// Create inserts the video provided. If the video has no ID, one is generated
// and written back to the model before insertion.
func (store *Store) Create(ctx context.Context, db database.Queryable, video *Video) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}

	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := db.NamedExecContext(ctx, `
		INSERT INTO videos(id, user_id, title, description, video_url, thumbnail_url, created_at, updated_at)
		VALUES (:id, :user_id, :title, :description, :video_url, :thumbnail_url, :created_at, :updated_at)
	`, video)
	if err != nil {
		return fmt.Errorf("failed to insert video %s: %w", video.ID, err)
	}

	log.Emit(logger.NEW, "Created video %s for user %s\n", video.ID, video.UserID)
	return nil
}

// Get returns the video with the matching ID, or ErrVideoNotFound if no
// such video exists.
func (store *Store) Get(ctx context.Context, db database.Queryable, videoID uuid.UUID) (*Video, error) {
	query, args, err := psql.Select("*").From("videos").Where(squirrel.Eq{"id": videoID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct select video query: %w", err)
	}

	var video Video
	if err := db.GetContext(ctx, &video, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}

		return nil, fmt.Errorf("failed to select video %s: %w", videoID, err)
	}

	return &video, nil
}

// ListForUser returns all videos owned by the user provided, newest first.
func (store *Store) ListForUser(ctx context.Context, db database.Queryable, userID uuid.UUID) ([]*Video, error) {
	query, args, err := psql.Select("*").
		From("videos").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct list videos query: %w", err)
	}

	results := make([]*Video, 0)
	if err := db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list videos for user %s: %w", userID, err)
	}

	return results, nil
}

// Update persists the mutable fields of the provided video. The ownership
// and creation time of a video are never changed by this method.
func (store *Store) Update(ctx context.Context, db database.Queryable, video *Video) error {
	video.UpdatedAt = time.Now().UTC()

	query, args, err := psql.Update("videos").
		Set("title", video.Title).
		Set("description", video.Description).
		Set("video_url", video.VideoURL).
		Set("thumbnail_url", video.ThumbnailURL).
		Set("updated_at", video.UpdatedAt).
		Where(squirrel.Eq{"id": video.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to construct update video query: %w", err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update video %s: %w", video.ID, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrVideoNotFound
	}

	return nil
}
