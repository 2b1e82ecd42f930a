package upload

import (
	"users-api/internal/domain/upload"
)

func ToResponseUpload(uDomain upload.Upload) Upload {
	return Upload{
		FileName: uDomain.FileName,
		MimeType: uDomain.MimeType,
		Size:     uDomain.SizeBytes,
		Path:     uDomain.Path,
	}
}
