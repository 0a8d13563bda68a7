package services

import (
	"context"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
)

const (
	uploadImagesPath = "/upload/images"
	uploadField      = "images"
)

// ImageFile is one file to upload.
type ImageFile struct {
	Filename string
	Content  io.Reader
}

type UploadService interface {
	Images(ctx context.Context, folder string, files []ImageFile) ([]domain.UploadedImage, error)
}

type uploadService struct {
	client *clients.Client
	log    *logrus.Logger
}

func NewUploadService(client *clients.Client, logger *logrus.Logger) UploadService {
	return &uploadService{client: client, log: logger}
}

func (s *uploadService) Images(ctx context.Context, folder string, files []ImageFile) ([]domain.UploadedImage, error) {
	form := &clients.MultipartForm{}
	if folder != "" {
		form.Fields = map[string]string{"folder": folder}
	}
	for _, f := range files {
		form.Files = append(form.Files, clients.FormFile{Field: uploadField, Filename: f.Filename, Content: f.Content})
	}
	s.log.Debugf("UploadService: Uploading %d images", len(files))

	var uploaded []domain.UploadedImage
	err := s.client.Do(ctx, clients.Request{Method: http.MethodPost, Path: uploadImagesPath, Form: form}, &uploaded)
	if err != nil {
		return nil, err
	}
	return uploaded, nil
}
