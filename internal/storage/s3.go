package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Categorias por tipo de upload
var typeMap = map[string]string{
	"avatar":    "avatars",
	"documento": "documentos",
	"anexo":     "anexos",
}

// Client fala com um bucket compatível com S3 (Backblaze B2)
type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func New(endpoint, region, bucket, accessKey, secretKey string) *Client {
	awsCfg := aws.Config{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &Client{
		s3:      client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}
}

// ObjectKey monta a chave tenants/{id}/{categoria}/{uuid}.{ext}
func ObjectKey(tenantID uint, fileType, originalName string) string {
	category, ok := typeMap[fileType]
	if !ok {
		category = "uploads"
	}

	ext := strings.TrimPrefix(path.Ext(originalName), ".")
	name := uuid.NewString()
	if ext != "" {
		name = name + "." + ext
	}

	return fmt.Sprintf("tenants/%d/%s/%s", tenantID, category, name)
}

func (c *Client) Put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	return err
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", err
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := ""
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return content, contentType, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

// PresignURL gera uma URL temporária de download
func (c *Client) PresignURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
