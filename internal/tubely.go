package internal

import (
	"context"
	"fmt"
	"sync"

	"github.com/hbomb79/Tubely/internal/api"
	"github.com/hbomb79/Tubely/internal/api/auth"
	"github.com/hbomb79/Tubely/internal/database"
	"github.com/hbomb79/Tubely/internal/ffmpeg"
	"github.com/hbomb79/Tubely/internal/ingest"
	"github.com/hbomb79/Tubely/internal/storage"
	"github.com/hbomb79/Tubely/pkg/logger"
)

var log = logger.Get("Core")

type (
	RunnableService interface {
		Run(context.Context) error
	}

	DatabaseServer interface {
		Connect(database.Config) error
		Close() error
	}

	IngestMonitor interface {
		ActiveIngestions() int
	}
)

// tubelyImpl represents the top-level object for the server, and is responsible
// for initialising the stores, the media tooling, the publishers and the REST gateway.
type tubelyImpl struct {
	config TubelyConfig
	db     DatabaseServer
	store  *dataOrchestrator

	ingestService IngestMonitor
	restGateway   RunnableService
}

// New constructs all of Tubely's services using the configuration provided. The
// database is not connected until Run is called.
func New(ctx context.Context, config TubelyConfig) (*tubelyImpl, error) {
	log.Emit(logger.DEBUG, "Bootstrapping Tubely services using storage backend '%s'\n", config.StorageBackend)

	db := database.New()
	store, err := NewDataOrchestrator(db)
	if err != nil {
		return nil, fmt.Errorf("failed to construct data orchestrator: %w", err)
	}

	staging, err := storage.NewStaging(config.Staging)
	if err != nil {
		return nil, fmt.Errorf("failed to construct staging area: %w", err)
	}

	assetPublisher, err := storage.NewFilesystemPublisher(config.Assets)
	if err != nil {
		return nil, fmt.Errorf("failed to construct asset publisher: %w", err)
	}

	videoPublisher, err := newVideoPublisher(ctx, config, assetPublisher)
	if err != nil {
		return nil, err
	}

	runner := ffmpeg.NewExecRunner()
	ingestService := ingest.New(
		config.Ingest,
		store,
		staging,
		ffmpeg.NewRemuxer(config.Format, runner),
		ffmpeg.NewProber(config.Format, runner),
		videoPublisher,
		assetPublisher,
	)

	return &tubelyImpl{
		config:        config,
		db:            db,
		store:         store,
		ingestService: ingestService,
		restGateway: api.NewRestGateway(
			&config.RestConfig,
			auth.New(config.AuthConfig),
			ingestService,
			store,
			config.Ingest,
			assetPublisher.Root(),
		),
	}, nil
}

// newVideoPublisher returns the publisher used for processed videos. When the
// filesystem backend is selected, videos are published alongside the local assets.
func newVideoPublisher(ctx context.Context, config TubelyConfig, assets *storage.FilesystemPublisher) (ingest.Publisher, error) {
	switch config.StorageBackend {
	case storage.BackendS3:
		publisher, err := storage.NewS3Publisher(ctx, config.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to construct S3 publisher: %w", err)
		}

		return publisher, nil
	case storage.BackendFilesystem:
		log.Warnf("Videos will be published to the local assets directory (%s)\n", assets.Root())
		return assets, nil
	}

	return nil, fmt.Errorf("unknown storage backend '%s'", config.StorageBackend)
}

// Run will start all of Tubely by bringing up all required services and connections.
//
// This function will not return until Tubely is stopped.
// To stop Tubely, the provided context must be cancelled. Errors from which Tubely cannot recover
// will also cause Tubely to stop.
func (tubely *tubelyImpl) Run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	crashHandler := func(label string, err error) {
		log.Emit(logger.FATAL, "Service crash (%s)! %s\n", label, err.Error())
		cancel()
	}

	log.Emit(logger.NEW, "Connecting to database...\n")
	if err := tubely.db.Connect(tubely.config.Database); err != nil {
		return err
	}
	defer tubely.db.Close()

	wg := &sync.WaitGroup{}
	tubely.spawnAsyncService(ctx, wg, tubely.restGateway, "rest-gateway", crashHandler)
	log.Emit(logger.SUCCESS, "Tubely services spawned!\n")

	wg.Wait()
	tubely.reportUnfinishedIngestions()
	log.Emit(logger.STOP, "Tubely services stopped\n")
	return nil
}

// reportUnfinishedIngestions warns about any video ingestions which were
// still running when the services stopped. Their staged files are removed
// as each run unwinds, but the video records are left without a URL.
func (tubely *tubelyImpl) reportUnfinishedIngestions() {
	if active := tubely.ingestService.ActiveIngestions(); active > 0 {
		log.Warnf("%d video ingestion(s) were still running at shutdown\n", active)
	}
}

// spawnAsyncService will run the provided function/service as it's own
// go-routine, ensuring that the Tubely service waitgroup is updated correctly
func (tubely *tubelyImpl) spawnAsyncService(ctx context.Context, wg *sync.WaitGroup, service RunnableService, serviceLabel string, crashHandler func(string, error)) {
	log.Emit(logger.NEW, "Spawning %s\n", serviceLabel)
	wg.Add(1)

	go func(wg *sync.WaitGroup, label string, crash func(string, error)) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				crash(label, fmt.Errorf("panic %v", r))
			}
		}()

		if err := service.Run(ctx); err != nil {
			crash(label, err)
		}
	}(wg, serviceLabel, crashHandler)
}
