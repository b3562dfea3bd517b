package driveclient

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vfg2006/baile-dashboard-api/internal/config"
)

var (
	ErrEmptyFile            = errors.New("arquivo vazio")
	ErrConfirmationNotFound = errors.New("página de confirmação do Drive sem link de download (arquivo não é público?)")
	ErrFileTooLarge         = errors.New("arquivo excede o tamanho máximo permitido")
)

// DefaultMaxBytes limita o download quando SOURCE_MAX_BYTES não é informado
const DefaultMaxBytes int64 = 20 << 20

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

// Client baixa o conteúdo bruto da planilha
type Client interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// NewClient cria o cliente conforme o tipo de origem configurado
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	source := cfg.Source

	switch source.Kind {
	case config.SourceKindDrive:
		return NewPublicClient(source.DownloadURL, source.Timeout, source.MaxBytes), nil
	case config.SourceKindDriveAPI:
		return NewAPIClient(ctx, source.CredentialsFile, source.MaxBytes)
	case config.SourceKindGCS:
		return NewGCSClient(source.Bucket, source.CredentialsFile, source.MaxBytes), nil
	case config.SourceKindFile:
		return NewFileClient(), nil
	default:
		return nil, fmt.Errorf("tipo de origem não suportado: %q", source.Kind)
	}
}

// readLimited lê r até maxBytes; acima disso devolve ErrFileTooLarge
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
