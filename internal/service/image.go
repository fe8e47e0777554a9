package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/safebite/backend/config"
)

// ImageService stores menu item photos in S3.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadItemPhoto uploads photo bytes for a menu item and returns the public
// URL.
func (s *ImageService) UploadItemPhoto(ctx context.Context, itemID uuid.UUID, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	fileName := fmt.Sprintf("item-photos/%s/%s", itemID, uuid.New().String())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded item photo to S3: %s", publicURL)
	return publicURL, nil
}
