package mockapi

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shop_client/internal/domain"
)

const (
	uploadField   = "images"
	maxUploadSize = 5 << 20
)

type UploadHandler struct {
	repo *Repository
	log  *logrus.Logger
}

func NewUploadHandler(repo *Repository, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{repo: repo, log: logger}
}

func (h *UploadHandler) RegisterRoutes(public, protected gin.IRouter) {
	protected.POST("/upload/images", h.UploadImages)
	public.GET("/uploads/:name", h.ServeUpload)
}

func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid multipart body: "+err.Error())
		return
	}
	files := form.File[uploadField]
	if len(files) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "No images provided")
		return
	}

	uploaded := make([]domain.UploadedImage, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxUploadSize {
			ValidationErrorResponse(c, []domain.FieldError{{Field: uploadField, Message: fmt.Sprintf("%s exceeds %d bytes", fh.Filename, maxUploadSize)}})
			return
		}
		f, err := fh.Open()
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Failed to read "+fh.Filename)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
		f.Close()
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Failed to read "+fh.Filename)
			return
		}

		name := uuid.NewString() + "-" + filepath.Base(fh.Filename)
		h.repo.SaveUpload(name, data)
		uploaded = append(uploaded, domain.UploadedImage{URL: "/api/uploads/" + name, Filename: name, Size: int64(len(data))})
	}

	h.log.Infof("Stored %d uploaded images", len(uploaded))
	SuccessResponse(c, http.StatusOK, "Images uploaded", uploaded)
}

func (h *UploadHandler) ServeUpload(c *gin.Context) {
	data, ok := h.repo.Upload(c.Param("name"))
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "File not found")
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
