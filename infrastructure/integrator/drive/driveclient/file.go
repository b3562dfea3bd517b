package driveclient

import (
	"context"
	"fmt"
	"os"
)

// FileClient lê a planilha do disco, usado em desenvolvimento
type FileClient struct{}

func NewFileClient() Client {
	return &FileClient{}
}

func (c *FileClient) Download(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo local: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return data, nil
}
