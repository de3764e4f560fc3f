package storage

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	Name        string
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Region      string
	Endpoint    string
	AuthDetails string // Authentication details. In case of S3 bucket - "key:secret"
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

func (b Bucket) String() string {
	if b.IsS3() {
		return fmt.Sprintf("s3://%s/%s", b.Name, strings.Trim(b.Path, "/"))
	}
	return "file://" + b.Path
}

// GetRemotePath prepends the bucket prefix (if any)
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.Config{
		Region: aws.String(b.Region),
	}
	if b.Endpoint != "" {
		cfg.Endpoint = aws.String(b.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if key, secret, found := strings.Cut(b.AuthDetails, ":"); found {
		cfg.Credentials = credentials.NewStaticCredentials(key, secret, "")
	}
	sess := session.Must(session.NewSession(&cfg))
	return s3.New(sess)
}
