package storage

import (
	"context"
	"io"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.StorageService {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, objectName string) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return objectName, nil
}

// GetFile stats the object first so a missing key surfaces before any byte is streamed.
func (m *minioStorage) GetFile(ctx context.Context, objectName string) (io.ReadCloser, *contracts.StoredObjectInfo, error) {
	object, err := m.MinioClient.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, exceptions.ErrMinioGetObject(err, m.BucketName)
	}

	info, err := object.Stat()
	if err != nil {
		object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, exceptions.ErrNotFound(err, "evidence object")
		}
		return nil, nil, exceptions.ErrMinioGetObject(err, m.BucketName)
	}

	return object, &contracts.StoredObjectInfo{
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}
