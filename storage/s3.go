package storage

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignServeFor = 15 * time.Minute

type S3Storage struct {
	Bucket   Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) *S3Storage {
	return &S3Storage{
		Bucket:   *bucket,
		s3Client: bucket.CreateSVC(),
	}
}

// GetFullPath returns the s3:// URI of the object
func (s *S3Storage) GetFullPath(path string) string {
	return "s3://" + s.Bucket.Name + "/" + s.Bucket.GetRemotePath(path)
}

// Save uploads the content to the remote S3 object
func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	counter := &countingReader{reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.Bucket.Name,
		Key:         aws.String(s.Bucket.GetRemotePath(path)),
		ContentType: aws.String(mimeTypeOf(path)),
		Body:        counter,
	})
	return counter.n, err
}

// Serve redirects to a pre-signed URL
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	url, err := req.Presign(presignServeFor)
	if err != nil {
		log.Printf("Cannot presign %s: %v", path, err)
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	return err
}

func mimeTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}

type countingReader struct {
	reader io.Reader
	n      int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.n += int64(n)
	return n, err
}
