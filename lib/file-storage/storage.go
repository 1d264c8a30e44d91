package filestorage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewInstance(s3client *minio.Client, bucketName string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

// Connect cliente S3; sin endpoint el almacenamiento queda deshabilitado (nil)
func Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) (Provider, error) {
	if endpoint == "" {
		log.Warn("almacenamiento S3 no configurado, los documentos de licencias quedan deshabilitados")
		return nil, nil
	}
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Error al inicializar el cliente S3")
	}
	storage := NewInstance(minioClient, bucketName)
	if err = storage.MakeBucket(ctx); err != nil {
		return nil, errors.Wrap(err, "Error al crear el bucket S3")
	}
	log.Info("Cliente S3 inicializado")
	return storage, nil
}

func (i impl) UploadFile(ctx context.Context, key string, fileReader io.Reader, fileSize int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, fileReader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

func (i impl) RemoveFile(ctx context.Context, key string) error {
	return i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
}

func (i impl) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	return nil
}
