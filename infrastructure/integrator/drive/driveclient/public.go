package driveclient

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PublicClient baixa arquivos compartilhados publicamente no Google Drive
type PublicClient struct {
	httpClient *http.Client
	baseURL    string
	maxBytes   int64
}

func NewPublicClient(baseURL string, timeout time.Duration, maxBytes int64) Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// O Drive usa cookies entre a página de confirmação e o download
	jar, _ := cookiejar.New(nil)

	return &PublicClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		baseURL:  baseURL,
		maxBytes: maxBytes,
	}
}

func (c *PublicClient) Download(ctx context.Context, fileID string) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}

	query := endpoint.Query()
	query.Set("export", "download")
	query.Set("id", fileID)
	endpoint.RawQuery = query.Encode()

	body, html, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}
	if !html {
		return body, nil
	}

	// Arquivos grandes passam por uma página de confirmação de antivírus
	confirmURL, err := confirmationURL(endpoint, body)
	if err != nil {
		return nil, err
	}

	body, html, err = c.get(ctx, confirmURL)
	if err != nil {
		return nil, err
	}
	if html {
		return nil, ErrConfirmationNotFound
	}

	return body, nil
}

func (c *PublicClient) get(ctx context.Context, rawURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	body, err := readLimited(resp.Body, c.maxBytes)
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler a resposta: %w", err)
	}
	if len(body) == 0 {
		return nil, false, ErrEmptyFile
	}

	return body, isHTML(resp.Header.Get("Content-Type")), nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}

// confirmationURL extrai da página de aviso o link que efetivamente baixa o arquivo.
// O Drive usa um formulário com campos ocultos (id, export, confirm, uuid) ou,
// em versões antigas, um link direto.
func confirmationURL(base *url.URL, page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("erro ao ler página de confirmação: %w", err)
	}

	form := doc.Find("form#download-form").First()
	if form.Length() == 0 {
		form = doc.Find("form[action]").First()
	}

	if action, ok := form.Attr("action"); ok {
		target, err := base.Parse(action)
		if err != nil {
			return "", fmt.Errorf("erro ao analisar ação do formulário: %w", err)
		}

		query := target.Query()
		form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
			name, _ := input.Attr("name")
			if name == "" {
				return
			}
			value, _ := input.Attr("value")
			query.Set(name, value)
		})
		target.RawQuery = query.Encode()

		return target.String(), nil
	}

	if href, ok := doc.Find("a#uc-download-link").Attr("href"); ok {
		target, err := base.Parse(href)
		if err != nil {
			return "", fmt.Errorf("erro ao analisar link de download: %w", err)
		}
		return target.String(), nil
	}

	return "", ErrConfirmationNotFound
}
