package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/ffmpeg"
	"github.com/hbomb79/Tubely/internal/media"
	"github.com/hbomb79/Tubely/internal/storage"
	"github.com/hbomb79/Tubely/internal/video"
	"github.com/hbomb79/Tubely/pkg/logger"
	"github.com/hbomb79/Tubely/pkg/sync"
)

const VideoContentType = "video/mp4"

var (
	log = logger.Get("Ingest")

	thumbnailContentTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
	}
)

type (
	Store interface {
		GetVideo(ctx context.Context, videoID uuid.UUID) (*video.Video, error)
		UpdateVideo(ctx context.Context, video *video.Video) error
	}

	Remuxer interface {
		Remux(ctx context.Context, inputPath string) (string, error)
	}

	Prober interface {
		Probe(ctx context.Context, path string) (ffmpeg.Dimensions, error)
	}

	Publisher interface {
		storage.Publisher
	}

	// Service ingests uploaded media for existing video records. Videos
	// are staged locally, remuxed for fast-start playback, classified
	// by their orientation and published to object storage. Thumbnails
	// are published as-is to the asset publisher.
	Service struct {
		config         Config
		store          Store
		staging        *storage.Staging
		remuxer        Remuxer
		prober         Prober
		videoPublisher Publisher
		assetPublisher Publisher
		names          storage.NameSource

		// Videos which currently have an ingestion running
		inFlight *sync.TypedRefCounter[uuid.UUID]
	}

	Option func(*Service)
)

// WithNameSource overrides the source of random file names
// used by the service.
func WithNameSource(names storage.NameSource) Option {
	return func(s *Service) { s.names = names }
}

func New(
	config Config,
	store Store,
	staging *storage.Staging,
	remuxer Remuxer,
	prober Prober,
	videoPublisher Publisher,
	assetPublisher Publisher,
	opts ...Option,
) *Service {
	service := &Service{
		config:         config,
		store:          store,
		staging:        staging,
		remuxer:        remuxer,
		prober:         prober,
		videoPublisher: videoPublisher,
		assetPublisher: assetPublisher,
		names:          storage.RandomName,
		inFlight:       &sync.TypedRefCounter[uuid.UUID]{},
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// IngestVideo accepts a video upload for the video record with the given ID. The
// upload is only read once the requester has been confirmed as the owner of
// the record. On success the record is updated with the public URL of the
// published video and returned.
//
// All files staged during ingestion are removed before this method returns,
// regardless of the outcome. The record is only updated if every step
// (including publishing) succeeds.
func (service *Service) IngestVideo(ctx context.Context, videoID uuid.UUID, requesterID uuid.UUID, source UploadSource) (*video.Video, error) {
	record, err := service.authorize(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	// Overlapping uploads for one video are not serialized here; each run
	// stages under its own name and the last to update the record wins.
	if runs := service.inFlight.Acquire(videoID); runs > 1 {
		log.Infof("Video %s now has %d concurrent ingestions\n", videoID, runs)
	}
	defer service.inFlight.Release(videoID)
	log.Debugf("Ingesting video %s (%d videos currently ingesting)\n", videoID, service.inFlight.Len())

	upload, err := readSource(source)
	if err != nil {
		return nil, err
	}
	if upload.ContentType != VideoContentType {
		return nil, fmt.Errorf("%w: content type '%s' is not allowed, expected '%s'", ErrInvalidInput, upload.ContentType, VideoContentType)
	}
	if upload.Size > service.config.MaxVideoSize {
		return nil, fmt.Errorf("%w: video of %d bytes exceeds maximum size of %d bytes", ErrInvalidInput, upload.Size, service.config.MaxVideoSize)
	}

	fileName, err := service.fileName(upload.ContentType)
	if err != nil {
		return nil, err
	}

	var staged []string
	defer func() {
		for _, path := range staged {
			service.staging.Remove(path)
		}
	}()

	raw, err := service.stage(fileName, upload)
	if err != nil {
		return nil, err
	}
	staged = append(staged, raw.Path)

	// The remuxer writes its output next to the input, so track that path now
	// to ensure partially written output is removed if the remux fails.
	staged = append(staged, ffmpeg.ProcessedPath(raw.Path))
	remuxedPath, err := service.remuxer.Remux(ctx, raw.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to remux video %s: %w", ErrProcessingFailed, videoID, err)
	}
	remuxed := &storage.StagedFile{Path: remuxedPath, Stage: storage.StageRemuxed}
	if remuxed.Path != ffmpeg.ProcessedPath(raw.Path) {
		staged = append(staged, remuxed.Path)
	}

	dimensions, err := service.prober.Probe(ctx, remuxed.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to probe video %s: %w", ErrProcessingFailed, videoID, err)
	}

	category := media.Classify(dimensions.Width, dimensions.Height)
	key := storage.Key(category.String(), filepath.Base(remuxed.Path))
	log.Debugf("Video %s (%dx%d) classified as %s, publishing to '%s'\n", videoID, dimensions.Width, dimensions.Height, category, key)

	if err := service.publishFile(ctx, remuxed, key, upload.ContentType); err != nil {
		return nil, err
	}

	url := service.videoPublisher.PublicURL(key)
	record.VideoURL = &url
	if err := service.store.UpdateVideo(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update video %s following ingestion: %w", videoID, err)
	}

	log.Emit(logger.SUCCESS, "Ingested video %s -> %s\n", videoID, url)
	return record, nil
}

// IngestThumbnail accepts a JPEG or PNG thumbnail for the video record with the
// given ID, publishing it to the asset publisher under a random name. As with
// IngestVideo, the upload is not read until ownership is confirmed.
func (service *Service) IngestThumbnail(ctx context.Context, videoID uuid.UUID, requesterID uuid.UUID, source UploadSource) (*video.Video, error) {
	record, err := service.authorize(ctx, videoID, requesterID)
	if err != nil {
		return nil, err
	}

	upload, err := readSource(source)
	if err != nil {
		return nil, err
	}
	if _, ok := thumbnailContentTypes[upload.ContentType]; !ok {
		return nil, fmt.Errorf("%w: content type '%s' is not allowed for thumbnails", ErrInvalidInput, upload.ContentType)
	}
	if upload.Size > service.config.MaxThumbnailSize {
		return nil, fmt.Errorf("%w: thumbnail of %d bytes exceeds maximum size of %d bytes", ErrInvalidInput, upload.Size, service.config.MaxThumbnailSize)
	}

	key, err := service.fileName(upload.ContentType)
	if err != nil {
		return nil, err
	}

	body, err := upload.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open thumbnail: %w", ErrInvalidInput, err)
	}
	defer body.Close()

	if err := service.assetPublisher.Publish(ctx, key, upload.ContentType, newLimitedReader(body, service.config.MaxThumbnailSize)); err != nil {
		if errors.Is(err, errPayloadTooLarge) {
			return nil, fmt.Errorf("%w: thumbnail exceeds maximum size of %d bytes", ErrInvalidInput, service.config.MaxThumbnailSize)
		}

		return nil, fmt.Errorf("%w: failed to publish thumbnail for video %s: %w", ErrStorageUnavailable, videoID, err)
	}

	url := service.assetPublisher.PublicURL(key)
	record.ThumbnailURL = &url
	if err := service.store.UpdateVideo(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update video %s following thumbnail upload: %w", videoID, err)
	}

	log.Emit(logger.SUCCESS, "Ingested thumbnail for video %s -> %s\n", videoID, url)
	return record, nil
}

// IsProcessing returns true if a video ingestion is currently
// running for the video with the given ID.
func (service *Service) IsProcessing(videoID uuid.UUID) bool {
	return service.inFlight.Held(videoID)
}

// ActiveIngestions returns the number of distinct videos which
// currently have an ingestion running.
func (service *Service) ActiveIngestions() int {
	return service.inFlight.Len()
}

// authorize fetches the video record and ensures it is owned by the requester.
func (service *Service) authorize(ctx context.Context, videoID uuid.UUID, requesterID uuid.UUID) (*video.Video, error) {
	if videoID == uuid.Nil {
		return nil, fmt.Errorf("%w: video ID must be provided", ErrInvalidInput)
	}
	if requesterID == uuid.Nil {
		return nil, fmt.Errorf("%w: requester ID must be provided", ErrInvalidInput)
	}

	record, err := service.store.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			return nil, fmt.Errorf("%w: video %s does not exist", ErrNotFound, videoID)
		}

		return nil, fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}

	if record.UserID != requesterID {
		log.Warnf("User %s attempted to upload media for video %s which they do not own\n", requesterID, videoID)
		return nil, fmt.Errorf("%w: video %s does not belong to the requester", ErrForbidden, videoID)
	}

	return record, nil
}

// fileName returns a random file name with an extension matching the content type.
func (service *Service) fileName(contentType string) (string, error) {
	ext, err := extensionForContentType(contentType)
	if err != nil {
		return "", err
	}

	name, err := service.names()
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}

	return fmt.Sprintf("%s.%s", name, ext), nil
}

func (service *Service) stage(fileName string, upload *Upload) (*storage.StagedFile, error) {
	body, err := upload.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open upload: %w", ErrInvalidInput, err)
	}
	defer body.Close()

	staged, err := service.staging.Write(fileName, newLimitedReader(body, service.config.MaxVideoSize))
	if err != nil {
		if errors.Is(err, errPayloadTooLarge) {
			return nil, fmt.Errorf("%w: video exceeds maximum size of %d bytes", ErrInvalidInput, service.config.MaxVideoSize)
		}

		return nil, fmt.Errorf("%w: failed to stage upload: %w", ErrProcessingFailed, err)
	}

	return staged, nil
}

func (service *Service) publishFile(ctx context.Context, file *storage.StagedFile, key string, contentType string) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s file %s: %w", ErrProcessingFailed, file.Stage, file.Path, err)
	}
	defer f.Close()

	if err := service.videoPublisher.Publish(ctx, key, contentType, f); err != nil {
		return fmt.Errorf("%w: failed to publish '%s': %w", ErrStorageUnavailable, key, err)
	}

	return nil
}

func readSource(source UploadSource) (*Upload, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: no upload provided", ErrInvalidInput)
	}

	upload, err := source()
	if err != nil {
		return nil, fmt.Errorf("%w: upload is not a file: %w", ErrInvalidInput, err)
	}
	if upload == nil || upload.Open == nil {
		return nil, fmt.Errorf("%w: upload is not a file", ErrInvalidInput)
	}

	return upload, nil
}
