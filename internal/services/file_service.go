package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tripbuilder/internal/models"
	"tripbuilder/internal/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = time.Hour

// s3API is the slice of the S3 client the service uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type s3Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// FileService stores uploads in S3 and tracks them in the files table.
// Public files carry a Public=yes object tag; everything else is
// reached through pre-signed URLs.
type FileService struct {
	s3      s3API
	presign s3Presigner
	bucket  string
	files   *repositories.FileRepository
}

func NewFileService(ctx context.Context, bucket, region, accessKey, secretKey string, files *repositories.FileRepository) (*FileService, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &FileService{
		s3:      client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		files:   files,
	}, nil
}

// UploadParams describes one upload.
type UploadParams struct {
	TripName      string
	PassengerName string
	FileType      string // passports, signatures, documents
	Filename      string
	ContentType   string
	Data          []byte
	IsPublic      bool
	TripID        *int
	PassengerID   *string
	UploadedBy    string
}

// Upload writes the object to S3 under the standard key layout and
// records it in the files table.
func (s *FileService) Upload(ctx context.Context, p UploadParams) (*models.File, error) {
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("empty file %q", p.Filename)
	}
	key := BuildS3Key(p.TripName, p.PassengerName, p.FileType, p.Filename)

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(p.Data),
	}
	if p.ContentType != "" {
		in.ContentType = aws.String(p.ContentType)
	}
	if p.IsPublic {
		in.Tagging = aws.String("Public=yes")
	}
	if _, err := s.s3.PutObject(ctx, in); err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", key, err)
	}

	file := &models.File{
		Filename:    p.Filename,
		S3Key:       key,
		FileType:    p.FileType,
		IsPublic:    p.IsPublic,
		TripID:      p.TripID,
		PassengerID: p.PassengerID,
	}
	if p.ContentType != "" {
		ct := p.ContentType
		file.ContentType = &ct
	}
	size := len(p.Data)
	file.FileSize = &size
	if p.UploadedBy != "" {
		by := p.UploadedBy
		file.UploadedBy = &by
	}
	if p.PassengerID != nil {
		ot := "passenger"
		file.OpportunityType = &ot
	} else if p.TripID != nil {
		ot := "trip"
		file.OpportunityType = &ot
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// DownloadURL returns a pre-signed GET URL valid for one hour.
func (s *FileService) DownloadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// UploadURL returns a pre-signed PUT URL so GHL webhooks can push
// files straight to the bucket.
func (s *FileService) UploadURL(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PublicURL returns the plain S3 URL for objects tagged Public=yes.
func (s *FileService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// Exists checks whether the object is in the bucket.
func (s *FileService) Exists(ctx context.Context, key string) bool {
	_, err := s.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// Delete removes the object and its database row.
func (s *FileService) Delete(ctx context.Context, id int) error {
	file, err := s.files.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(file.S3Key),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", file.S3Key, err)
	}
	return s.files.Delete(ctx, id)
}

func (s *FileService) Get(ctx context.Context, id int) (*models.File, error) {
	return s.files.Get(ctx, id)
}

func (s *FileService) ListByTrip(ctx context.Context, tripID int) ([]*models.File, error) {
	return s.files.ListByTrip(ctx, tripID)
}

func (s *FileService) ListByPassenger(ctx context.Context, passengerID string) ([]*models.File, error) {
	return s.files.ListByPassenger(ctx, passengerID)
}

// BuildS3Key lays out object keys as
// trips/{trip}/passengers/{name}/{type}/{timestamp}{ext}.
func BuildS3Key(tripName, passengerName, fileType, filename string) string {
	timestamp := time.Now().Format("20060102_150405")
	ext := filepath.Ext(filename)
	return fmt.Sprintf("trips/%s/passengers/%s/%s/%s%s",
		sanitizeS3Segment(tripName), sanitizeS3Segment(passengerName), fileType, timestamp, ext)
}

func sanitizeS3Segment(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	return strings.ReplaceAll(s, " ", "_")
}
