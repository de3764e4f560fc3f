package storage

import (
	"attendance/config"
	"io"
	"log"
	"net/http"
)

type StorageAPI interface {
	GetFullPath(path string) string
	Save(path string, reader io.Reader) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

var (
	defaultStorage StorageAPI
)

// Init creates the gallery storage from config: S3 if S3_BUCKET is set, local disk otherwise
func Init() {
	bucket := BucketFromConfig()
	log.Printf("Gallery storage: %s", bucket)
	defaultStorage = New(&bucket)
}

func New(bucket *Bucket) StorageAPI {
	if bucket.StorageType == StorageTypeS3 {
		return NewS3Storage(bucket)
	}
	return NewDiskStorage(bucket)
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

func BucketFromConfig() Bucket {
	if config.S3_BUCKET != "" {
		return Bucket{
			Name:        config.S3_BUCKET,
			StorageType: StorageTypeS3,
			Path:        config.S3_PREFIX,
			Region:      config.S3_REGION,
			Endpoint:    config.S3_ENDPOINT,
			AuthDetails: config.S3_AUTH,
		}
	}
	return Bucket{
		Name:        "gallery",
		StorageType: StorageTypeFile,
		Path:        config.GALLERY_DIR,
	}
}
