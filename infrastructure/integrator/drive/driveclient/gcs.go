package driveclient

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSClient lê a planilha de um objeto no Google Cloud Storage
type GCSClient struct {
	bucket   string
	maxBytes int64
	opts     []option.ClientOption
}

func NewGCSClient(bucket, credentialsFile string, maxBytes int64, opts ...option.ClientOption) Client {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return &GCSClient{bucket: bucket, maxBytes: maxBytes, opts: opts}
}

func (c *GCSClient) Download(ctx context.Context, object string) ([]byte, error) {
	client, err := storage.NewClient(ctx, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do storage: %w", err)
	}
	defer client.Close()

	reader, err := client.Bucket(c.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir objeto gs://%s/%s: %w", c.bucket, object, err)
	}
	defer reader.Close()

	data, err := readLimited(reader, c.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler objeto gs://%s/%s: %w", c.bucket, object, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return data, nil
}
