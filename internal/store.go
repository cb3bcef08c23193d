package internal

import (
	"context"

	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/database"
	"github.com/hbomb79/Tubely/internal/video"
	"github.com/jmoiron/sqlx"
)

type (
	// dataOrchestrator is responsible for managing all of Tubely's resources. You
	// can think of all the data stores below this layer being 'dumb', and this
	// store linking them together and providing the database instance
	//
	// If consumers need to be able to access data stores directly, they're
	// welcome to do so - however caution should be taken as stores have no
	// obligation to take care of relational data (which is the orchestrator's job)
	dataOrchestrator struct {
		db         database.Manager
		VideoStore *video.Store
	}
)

func NewDataOrchestrator(db database.Manager) (*dataOrchestrator, error) {
	if db.GetSqlxDb() != nil {
		panic("cannot construct tubely data store with an already connected database")
	}

	return &dataOrchestrator{db: db, VideoStore: video.NewStore()}, nil
}

func (rel *dataOrchestrator) CreateVideo(ctx context.Context, model *video.Video) error {
	return rel.db.WrapTx(func(tx *sqlx.Tx) error {
		return rel.VideoStore.Create(ctx, tx, model)
	})
}

func (rel *dataOrchestrator) GetVideo(ctx context.Context, videoID uuid.UUID) (*video.Video, error) {
	return rel.VideoStore.Get(ctx, rel.db.GetSqlxDb(), videoID)
}

func (rel *dataOrchestrator) ListVideosForUser(ctx context.Context, userID uuid.UUID) ([]*video.Video, error) {
	return rel.VideoStore.ListForUser(ctx, rel.db.GetSqlxDb(), userID)
}

// UpdateVideo persists the mutable fields of the video. The update is
// performed inside a transaction so that a failed write leaves the
// existing record untouched.
func (rel *dataOrchestrator) UpdateVideo(ctx context.Context, model *video.Video) error {
	return rel.db.WrapTx(func(tx *sqlx.Tx) error {
		return rel.VideoStore.Update(ctx, tx, model)
	})
}
