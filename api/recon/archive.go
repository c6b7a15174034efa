package recon

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"CourierReconSaas/api"
)

// Optional archival of raw uploads to S3. Reconciliation itself never touches
// disk or object storage; this only keeps the original files for later
// inspection when enabled.

const (
	archiveDefaultBucket = "courier-recon"
	archivePrefix        = "uploads/"
	archiveDefaultRegion = "ap-south-1"
)

func archiveBucket() string {
	if b := strings.TrimSpace(os.Getenv("RECON_S3_BUCKET")); b != "" {
		return b
	}
	return archiveDefaultBucket
}

func archiveRegion() string {
	if r := strings.TrimSpace(os.Getenv("RECON_S3_REGION")); r != "" {
		return r
	}
	return archiveDefaultRegion
}

// isArchiveEnabled reads RECON_S3_ENABLED. Defaults to false when unset.
func isArchiveEnabled() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("RECON_S3_ENABLED")))
	return v == "1" || v == "true" || v == "yes"
}

func detectContentType(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}
	if len(data) > 512 {
		return http.DetectContentType(data[:512])
	}
	return http.DetectContentType(data)
}

func buildArchiveKey(filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	return archivePrefix + hash + ext
}

func archiveUpload(ctx context.Context, filename string, data []byte) {
	key := buildArchiveKey(filename, data)
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(archiveRegion()))
	if err != nil {
		api.LogError("load AWS config for upload archive: %v", err)
		return
	}
	client := s3.NewFromConfig(cfg)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(archiveBucket()),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(detectContentType(data)),
	})
	if err != nil {
		api.LogError("archive upload to s3 (bucket %s, key %s): %v", archiveBucket(), key, err)
		return
	}
	api.LogInfo("archived upload %s to s3 key %s", filename, key)
}
