package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"videotube/internal/media"

	"go.uber.org/zap"
)

// multipartMemory is how much of a multipart body is held in memory before
// the rest spills to disk.
const multipartMemory = 10 << 20

func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.HTTP.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return BadRequest(fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
		}
		return BadRequest("Invalid multipart form")
	}
	return nil
}

func cleanupMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

// stageFormFile copies the file sent under field into the staging directory.
// It returns "" when the request carries no such file.
func (s *Server) stageFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	return s.staging.SaveUpload(header.Filename, file)
}

// uploadFormFile stages the file under field and hands it to the media host.
// The staged copy is removed whatever the outcome. A nil asset with a nil
// error means the field was absent.
func (s *Server) uploadFormFile(ctx context.Context, r *http.Request, field string) (*media.Asset, error) {
	localPath, err := s.stageFormFile(r, field)
	if err != nil {
		return nil, fmt.Errorf("staging %s: %w", field, err)
	}
	if localPath == "" {
		return nil, nil
	}
	defer func() {
		if err := s.staging.Remove(localPath); err != nil {
			s.logger.Warn("failed to remove staged file", zap.String("path", localPath), zap.Error(err))
		}
	}()

	return s.uploader.Upload(ctx, localPath)
}

// destroyAsset removes an asset from the media host. Failures are logged and
// otherwise ignored.
func (s *Server) destroyAsset(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.uploader.Destroy(ctx, publicID); err != nil {
		s.logger.Warn("failed to destroy media asset", zap.String("public_id", publicID), zap.Error(err))
	}
}

// destroyReplaced drops the asset behind previousURL once a new one has been
// stored, if media.delete_replaced is set.
func (s *Server) destroyReplaced(ctx context.Context, previousURL, currentURL string) {
	if !s.config.Media.DeleteReplaced || previousURL == "" || previousURL == currentURL {
		return
	}
	s.destroyAsset(ctx, media.PublicIDFromURL(previousURL))
}

// uploadError picks the client message for a failed upload.
func uploadError(what string, err error) *Error {
	if errors.Is(err, media.ErrNoFile) {
		return BadRequest(what + " file is missing")
	}
	return Internal("Error while uploading "+strings.ToLower(what), err)
}
