package initializers

import (
	"context"
	"workshift-backend/config"
	filestorage "workshift-backend/lib/file-storage"
)

func InitS3(ctx context.Context, conf *config.Configuration) (filestorage.Provider, error) {
	return filestorage.Connect(ctx, conf.S3.Endpoint, conf.S3.AccessKeyID, conf.S3.SecretAccessKey,
		conf.S3.BucketName, *conf.S3.UseSSL)
}
