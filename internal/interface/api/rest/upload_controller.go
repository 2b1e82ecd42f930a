package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"users-api/internal/application/ports"
	"users-api/internal/domain/upload"
	dto "users-api/internal/interface/api/rest/dto/upload"
)

// multipart boundaries, part headers and other form fields
const multipartOverhead = int64(1 << 20)

type UploadController struct {
	uploadService ports.UploadService
	logger        *zap.Logger
}

func NewUploadController(
	r gin.IRouter,
	uploadService ports.UploadService,
	logger *zap.Logger,
) *UploadController {
	upc := &UploadController{
		uploadService: uploadService,
		logger:        logger,
	}

	r.POST(RouteUpload, upc.UploadImageHandler)

	return upc
}

// UploadImageHandler streams the multipart body part by part, the file part
// is handed to the service before any of its bytes are read.
func (upc *UploadController) UploadImageHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.MaxFileSize+multipartOverhead)

	mr, err := c.Request.MultipartReader()
	if err != nil {
		// not multipart at all: there is no file
		fail(c, http.StatusBadRequest, MsgNoFile)
		return
	}

	for {
		part, err := mr.NextPart()
		// only a clean end is io.EOF itself, a truncated body wraps it
		if err == io.EOF {
			fail(c, http.StatusBadRequest, MsgNoFile)
			return
		}
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				fail(c, http.StatusBadRequest, MsgFileTooLarge)
				return
			}
			fail(c, http.StatusBadRequest, MsgInvalidUpload)
			return
		}

		if part.FormName() != upload.FieldName || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		u, err := upc.uploadService.SaveImage(
			c.Request.Context(),
			part.FileName(),
			part.Header.Get("Content-Type"),
			part,
		)
		_ = part.Close()
		if err != nil {
			upc.failUpload(c, err)
			return
		}

		success(c, http.StatusOK, MsgFileUploaded, dto.ToResponseUpload(*u))
		return
	}
}

func (upc *UploadController) failUpload(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, upload.ErrInvalidFileType):
		fail(c, http.StatusBadRequest, MsgInvalidType)
	case errors.Is(err, upload.ErrFileTooLarge), errors.As(err, &mbe):
		fail(c, http.StatusBadRequest, MsgFileTooLarge)
	case errors.Is(err, io.ErrUnexpectedEOF):
		// body ended inside the file part
		fail(c, http.StatusBadRequest, MsgInvalidUpload)
	default:
		fail(c, http.StatusInternalServerError, MsgInternalError)
		upc.logger.Error("SaveImage() error", zap.Error(err))
	}
}
