package ingest

// Config contains configuration options that allow
// customization of the limits applied to uploads.
type Config struct {
	// The largest video upload (in bytes) accepted. Any declared
	// or actual payload size above this is rejected.
	MaxVideoSize int64 `yaml:"max_video_size" env:"MAX_VIDEO_SIZE" env-default:"1073741824" validate:"gt=0"`

	// The largest thumbnail upload (in bytes) accepted.
	MaxThumbnailSize int64 `yaml:"max_thumbnail_size" env:"MAX_THUMBNAIL_SIZE" env-default:"10485760" validate:"gt=0"`
}

const (
	DefaultMaxVideoSize     int64 = 1 << 30
	DefaultMaxThumbnailSize int64 = 10 << 20
)

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{MaxVideoSize: DefaultMaxVideoSize, MaxThumbnailSize: DefaultMaxThumbnailSize}
}
