package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type (
	// Publisher persists objects under a given key such that they are
	// publicly reachable via PublicURL. Publishing an existing key
	// overwrites the previous object.
	Publisher interface {
		Publish(ctx context.Context, key string, contentType string, body io.Reader) error
		PublicURL(key string) string
	}

	Backend string
)

const (
	BackendS3         Backend = "s3"
	BackendFilesystem Backend = "filesystem"
)

// Key joins the provided segments using '/' to form an object
// storage key, e.g. Key("landscape", "abc.mp4") -> "landscape/abc.mp4".
func Key(segments ...string) string {
	trimmed := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg = strings.Trim(seg, "/"); seg != "" {
			trimmed = append(trimmed, seg)
		}
	}

	return strings.Join(trimmed, "/")
}

func joinURL(base string, key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(base, "/"), strings.TrimPrefix(key, "/"))
}
