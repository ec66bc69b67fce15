package handles

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 10 << 20
)

var allowedUploadExts = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {}, ".txt": {}, ".csv": {}, ".zip": {}, ".rar": {},
}

func allowedUpload(fh *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	_, ok := allowedUploadExts[ext]
	return ok
}

// saveUploads persists the request's "files" parts under the upload dir
// with random stored names and returns one attachment per file. A
// request without multipart content yields no attachments and no error.
func saveUploads(c *gin.Context) ([]model.FileAttachment, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse multipart form")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > maxUploadFiles {
		return nil, errors.Errorf("at most %d files per request", maxUploadFiles)
	}
	attachments := make([]model.FileAttachment, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxUploadFileSize {
			return nil, errors.Errorf("file %s exceeds the 10MB limit", fh.Filename)
		}
		if !allowedUpload(fh) {
			return nil, errors.Errorf("file type not supported: %s", fh.Filename)
		}
		stored := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		dst := filepath.Join(conf.Conf.UploadDir(), stored)
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			return nil, errors.Wrapf(err, "failed to store %s", fh.Filename)
		}
		utils.Log.Debugf("stored attachment %s as %s", fh.Filename, stored)
		attachments = append(attachments, model.FileAttachment{
			Name:       fh.Filename,
			StoredName: stored,
			Size:       fh.Size,
			MimeType:   fh.Header.Get("Content-Type"),
		})
	}
	return attachments, nil
}
