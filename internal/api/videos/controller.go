package videos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/api/util"
	"github.com/hbomb79/Tubely/internal/ingest"
	"github.com/hbomb79/Tubely/internal/video"
	"github.com/hbomb79/Tubely/pkg/logger"
	"github.com/labstack/echo/v4"
)

const (
	VideoFormField     = "video"
	ThumbnailFormField = "thumbnail"

	// Allowance on top of the upload size limits for the multipart
	// framing and any other form fields included in the request body.
	multipartOverhead int64 = 1 << 20
)

var log = logger.Get("VideosController")

type (
	Store interface {
		CreateVideo(ctx context.Context, video *video.Video) error
		GetVideo(ctx context.Context, videoID uuid.UUID) (*video.Video, error)
		ListVideosForUser(ctx context.Context, userID uuid.UUID) ([]*video.Video, error)
	}

	IngestService interface {
		IngestVideo(ctx context.Context, videoID uuid.UUID, requesterID uuid.UUID, source ingest.UploadSource) (*video.Video, error)
		IngestThumbnail(ctx context.Context, videoID uuid.UUID, requesterID uuid.UUID, source ingest.UploadSource) (*video.Video, error)
		IsProcessing(videoID uuid.UUID) bool
	}

	AuthProvider interface {
		GetUserIDFromContext(ec echo.Context) (uuid.UUID, error)
	}

	Controller struct {
		validate      *validator.Validate
		store         Store
		ingestService IngestService
		authProvider  AuthProvider
		limits        ingest.Config
	}
)

func New(validate *validator.Validate, authProvider AuthProvider, ingestService IngestService, store Store, limits ingest.Config) *Controller {
	return &Controller{
		validate:      validate,
		store:         store,
		ingestService: ingestService,
		authProvider:  authProvider,
		limits:        limits,
	}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/", controller.create)
	eg.GET("/", controller.list)
	eg.GET("/:videoID/", controller.get)
	eg.POST("/:videoID/video/", controller.uploadVideo)
	eg.POST("/:videoID/thumbnail/", controller.uploadThumbnail)
}

func (controller *Controller) create(ec echo.Context) error {
	userID, err := controller.authProvider.GetUserIDFromContext(ec)
	if err != nil {
		return util.ErrAPIUnauthorized
	}

	var createRequest CreateRequest
	if err := ec.Bind(&createRequest); err != nil {
		return util.NewInvalidInputError("Invalid body: %s", err.Error())
	}

	if err := controller.validate.Struct(createRequest); err != nil {
		return util.NewInvalidInputError("Invalid body: %s", err.Error())
	}

	model := &video.Video{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       createRequest.Title,
		Description: createRequest.Description,
	}
	if err := controller.store.CreateVideo(ec.Request().Context(), model); err != nil {
		return util.ToAPIError(fmt.Errorf("failed to create video: %w", err))
	}

	return ec.JSON(http.StatusCreated, newVideoDto(model, false))
}

// list returns all the videos owned by the requesting user.
func (controller *Controller) list(ec echo.Context) error {
	userID, err := controller.authProvider.GetUserIDFromContext(ec)
	if err != nil {
		return util.ErrAPIUnauthorized
	}

	models, err := controller.store.ListVideosForUser(ec.Request().Context(), userID)
	if err != nil {
		return util.ToAPIError(fmt.Errorf("failed to list videos: %w", err))
	}

	dtos := make([]VideoDto, 0, len(models))
	for _, model := range models {
		dtos = append(dtos, newVideoDto(model, controller.ingestService.IsProcessing(model.ID)))
	}

	return ec.JSON(http.StatusOK, dtos)
}

func (controller *Controller) get(ec echo.Context) error {
	userID, err := controller.authProvider.GetUserIDFromContext(ec)
	if err != nil {
		return util.ErrAPIUnauthorized
	}

	videoID, err := uuid.Parse(ec.Param("videoID"))
	if err != nil {
		return util.NewInvalidInputError("Video ID is not a valid UUID")
	}

	model, err := controller.store.GetVideo(ec.Request().Context(), videoID)
	if err != nil {
		if errors.Is(err, video.ErrVideoNotFound) {
			err = fmt.Errorf("%w: %w", ingest.ErrNotFound, err)
		}

		return util.ToAPIError(err)
	}

	if model.UserID != userID {
		return util.ToAPIError(ingest.ErrForbidden)
	}

	return ec.JSON(http.StatusOK, newVideoDto(model, controller.ingestService.IsProcessing(model.ID)))
}

// uploadVideo accepts a multipart upload containing an MP4 video, which is
// remuxed for fast-start, classified and published before the video record
// is updated to reference it. The response contains the updated record.
func (controller *Controller) uploadVideo(ec echo.Context) error {
	userID, err := controller.authProvider.GetUserIDFromContext(ec)
	if err != nil {
		return util.ErrAPIUnauthorized
	}

	videoID, err := uuid.Parse(ec.Param("videoID"))
	if err != nil {
		return util.NewInvalidInputError("Video ID is not a valid UUID")
	}

	source := formFileSource(ec, VideoFormField, controller.limits.MaxVideoSize)
	model, err := controller.ingestService.IngestVideo(ec.Request().Context(), videoID, userID, source)
	if err != nil {
		log.Warnf("Video upload for %s by user %s failed: %v\n", videoID, userID, err)
		return util.ToAPIError(err)
	}

	return ec.JSON(http.StatusOK, newVideoDto(model, false))
}

func (controller *Controller) uploadThumbnail(ec echo.Context) error {
	userID, err := controller.authProvider.GetUserIDFromContext(ec)
	if err != nil {
		return util.ErrAPIUnauthorized
	}

	videoID, err := uuid.Parse(ec.Param("videoID"))
	if err != nil {
		return util.NewInvalidInputError("Video ID is not a valid UUID")
	}

	source := formFileSource(ec, ThumbnailFormField, controller.limits.MaxThumbnailSize)
	model, err := controller.ingestService.IngestThumbnail(ec.Request().Context(), videoID, userID, source)
	if err != nil {
		log.Warnf("Thumbnail upload for %s by user %s failed: %v\n", videoID, userID, err)
		return util.ToAPIError(err)
	}

	return ec.JSON(http.StatusOK, newVideoDto(model, controller.ingestService.IsProcessing(model.ID)))
}

// formFileSource returns an UploadSource which parses the multipart form of the
// request and extracts the file under the given field. The request body is capped
// so that a client cannot force us to spool an arbitrarily large form to disk.
func formFileSource(ec echo.Context, field string, limit int64) ingest.UploadSource {
	return func() (*ingest.Upload, error) {
		req := ec.Request()
		req.Body = http.MaxBytesReader(ec.Response(), req.Body, limit+multipartOverhead)

		header, err := ec.FormFile(field)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, fmt.Errorf("request body exceeds %d bytes", maxBytesErr.Limit)
			}

			return nil, fmt.Errorf("form field '%s' is not a file: %w", field, err)
		}

		return &ingest.Upload{
			ContentType: header.Header.Get(echo.HeaderContentType),
			Size:        header.Size,
			Open:        func() (io.ReadCloser, error) { return header.Open() },
		}, nil
	}
}
