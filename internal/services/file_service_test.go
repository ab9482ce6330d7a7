package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	putInput  *s3.PutObjectInput
	putErr    error
	headErr   error
	deleted   []string
	deleteErr error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

type fakePresigner struct {
	url string
	err error
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url + "/" + *in.Key}, nil
}

func (f *fakePresigner) PresignPutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url + "/" + *in.Key}, nil
}

func TestBuildS3Key(t *testing.T) {
	key := BuildS3Key("Havana Spring", "Ana Diaz", "passports", "scan.pdf")

	parts := strings.Split(key, "/")
	require.Len(t, parts, 6)
	assert.Equal(t, "trips", parts[0])
	assert.Equal(t, "Havana_Spring", parts[1])
	assert.Equal(t, "passengers", parts[2])
	assert.Equal(t, "Ana_Diaz", parts[3])
	assert.Equal(t, "passports", parts[4])
	assert.True(t, strings.HasSuffix(parts[5], ".pdf"))
}

func TestBuildS3KeySanitizesSlashes(t *testing.T) {
	key := BuildS3Key("Spring/Summer Trip", "A/B Test", "documents", "mou.pdf")
	assert.NotContains(t, key, "Spring/Summer")
	assert.Contains(t, key, "Spring_Summer_Trip")
	assert.Contains(t, key, "A_B_Test")
}

func TestUploadRejectsEmptyData(t *testing.T) {
	svc := &FileService{s3: &fakeS3{}, bucket: "test-bucket"}

	_, err := svc.Upload(context.Background(), UploadParams{Filename: "empty.pdf"})
	assert.Error(t, err)
}

func TestUploadTagsPublicObjects(t *testing.T) {
	s3fake := &fakeS3{putErr: errors.New("stop before the database write")}
	svc := &FileService{s3: s3fake, bucket: "test-bucket"}

	_, err := svc.Upload(context.Background(), UploadParams{
		TripName:      "Havana Spring",
		PassengerName: "Ana Diaz",
		FileType:      "documents",
		Filename:      "mou.pdf",
		ContentType:   "application/pdf",
		Data:          []byte("%PDF"),
		IsPublic:      true,
	})
	require.Error(t, err)

	require.NotNil(t, s3fake.putInput)
	assert.Equal(t, "test-bucket", *s3fake.putInput.Bucket)
	require.NotNil(t, s3fake.putInput.Tagging)
	assert.Equal(t, "Public=yes", *s3fake.putInput.Tagging)
	require.NotNil(t, s3fake.putInput.ContentType)
	assert.Equal(t, "application/pdf", *s3fake.putInput.ContentType)
}

func TestDownloadURL(t *testing.T) {
	svc := &FileService{
		presign: &fakePresigner{url: "https://signed.example.com"},
		bucket:  "test-bucket",
	}

	url, err := svc.DownloadURL(context.Background(), "trips/x/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/trips/x/doc.pdf", url)
}

func TestPublicURL(t *testing.T) {
	svc := &FileService{bucket: "cet-uploads"}
	assert.Equal(t,
		"https://cet-uploads.s3.amazonaws.com/trips/x/doc.pdf",
		svc.PublicURL("trips/x/doc.pdf"))
}

func TestExists(t *testing.T) {
	svc := &FileService{s3: &fakeS3{}, bucket: "test-bucket"}
	assert.True(t, svc.Exists(context.Background(), "trips/x/doc.pdf"))

	svc = &FileService{s3: &fakeS3{headErr: errors.New("404")}, bucket: "test-bucket"}
	assert.False(t, svc.Exists(context.Background(), "trips/x/doc.pdf"))
}
