// Package analyzer содержит HTTP-клиент внешнего сервиса анализа резюме.
//
// Сервис принимает multipart POST с одним файлом и возвращает JSON
// со структурированным результатом анализа. Любой не-2xx статус или
// некорректный JSON считается ошибкой вызова.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент сервиса анализа. Таймаут ограничивает весь вызов,
// включая передачу файла: по его истечении вызов считается неуспешным.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Analyze отправляет файл на анализ и возвращает сырой JSON-результат.
func (c *Client) Analyze(ctx context.Context, fileName string, data []byte) (json.RawMessage, error) {
	const op = "analyzer.Analyze"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err = part.Write(data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: malformed analysis response", op)
	}
	return json.RawMessage(body), nil
}
