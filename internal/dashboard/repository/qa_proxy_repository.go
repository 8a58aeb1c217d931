package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/tracing"

	"go.uber.org/zap"
)

const (
	qaListDocumentsPath = "/v1/pw_list_documents"
	qaAnswerPath        = "/v1/pw_ai_answer"
)

// QAProxyRepository forwards document listing and questions to the external question-answering service.
type QAProxyRepository interface {
	ListDocuments(ctx context.Context) ([]dto.QADocument, error)
	Answer(ctx context.Context, prompt string) (json.RawMessage, error)
}

type qaProxyRepository struct {
	baseURL    string
	log        *logger.Logger
	httpClient *http.Client
}

// NewQAProxyRepository creates a QAProxyRepository.
func NewQAProxyRepository(cfg *config.Config, log *logger.Logger) QAProxyRepository {
	return &qaProxyRepository{
		baseURL: strings.TrimRight(cfg.QAProxy.BaseURL, "/"),
		log:     log,
		httpClient: &http.Client{
			Timeout: cfg.QAProxy.Timeout,
		},
	}
}

func (r *qaProxyRepository) ListDocuments(ctx context.Context) ([]dto.QADocument, error) {
	body, err := r.post(ctx, qaListDocumentsPath, nil)
	if err != nil {
		return nil, err
	}

	var docs []dto.QADocument
	if err := json.Unmarshal(body, &docs); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode document list", zap.Error(err))
		return nil, fmt.Errorf("%w: document list is not a JSON array", entity.ErrDataUnavailable)
	}
	return docs, nil
}

func (r *qaProxyRepository) Answer(ctx context.Context, prompt string) (json.RawMessage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", entity.ErrInvalidParameter)
	}

	body, err := r.post(ctx, qaAnswerPath, dto.QAAnswerRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: answer is not JSON", entity.ErrDataUnavailable)
	}
	return json.RawMessage(body), nil
}

func (r *qaProxyRepository) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "qa_proxy"+path)
	defer span.End()

	fields := []zap.Field{zap.String("path", path)}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, reqBody)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to create new http request", append(fields, zap.Error(err))...)
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to QA service", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: QA service unreachable", entity.ErrDataUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from QA service", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return nil, fmt.Errorf("%w: QA service returned status %d", entity.ErrDataUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to read response body from QA service", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: QA service response unreadable", entity.ErrDataUnavailable)
	}
	return body, nil
}
