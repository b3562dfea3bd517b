package driveclient

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	googleSheetsMimeType = "application/vnd.google-apps.spreadsheet"
	xlsxMimeType         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// APIClient baixa a planilha pela API do Google Drive usando uma conta de serviço
type APIClient struct {
	service  *drive.Service
	maxBytes int64
}

func NewAPIClient(ctx context.Context, credentialsFile string, maxBytes int64, opts ...option.ClientOption) (Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}, opts...)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do Drive: %w", err)
	}

	return &APIClient{service: service, maxBytes: maxBytes}, nil
}

func (c *APIClient) Download(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.service.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields("id", "name", "mimeType").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar arquivo no Drive: %w", err)
	}

	var resp *http.Response
	if file.MimeType == googleSheetsMimeType {
		// Planilhas nativas do Google precisam ser exportadas para xlsx
		resp, err = c.service.Files.Export(fileID, xlsxMimeType).Context(ctx).Download()
	} else {
		resp, err = c.service.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao baixar %q do Drive: %w", file.Name, err)
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body, c.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo do Drive: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return data, nil
}
