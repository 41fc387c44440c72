package contracts

import (
	"context"
	"io"
)

type StoredObjectInfo struct {
	Size        int64
	ContentType string
}

type StorageService interface {
	UploadFile(ctx context.Context, file io.Reader, size int64, contentType, objectName string) (string, error)
	GetFile(ctx context.Context, objectName string) (io.ReadCloser, *StoredObjectInfo, error)
}
