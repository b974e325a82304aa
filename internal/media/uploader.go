package media

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"
)

var (
	ErrNoFile       = errors.New("no file to upload")
	ErrUploadFailed = errors.New("media upload failed")
)

// Asset is a file stored on the media host.
type Asset struct {
	URL      string
	PublicID string
}

// Uploader moves a locally staged file to the media host.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL recovers the public id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/videotube/abc.png, which
// yields "videotube/abc". It returns "" for URLs that are not upload URLs.
func PublicIDFromURL(url string) string {
	_, rest, found := strings.Cut(url, "/upload/")
	if !found || rest == "" {
		return ""
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 1 && versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}

	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}
