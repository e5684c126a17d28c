package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName string) (string, error) {
	// Object names carry a random prefix so two uploads of the same file
	// never clobber each other.
	objectName := fmt.Sprintf("%s%s", uuid.NewString(), path.Ext(fileHeader.Filename))
	_, err := m.MinioClient.PutObject(ctx, bucketName, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return objectName, nil
}
