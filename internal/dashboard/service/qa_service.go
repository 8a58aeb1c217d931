package service

import (
	"context"
	"encoding/json"

	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/repository"
	"golang-market-sentiment/pkg/logger"
)

// QAService exposes the external question-answering service to the dashboard.
type QAService interface {
	ListDocuments(ctx context.Context) ([]dto.QADocument, error)
	Answer(ctx context.Context, prompt string) (*dto.QAAnswerResponse, error)
}

type qaService struct {
	repo repository.QAProxyRepository
	log  *logger.Logger
}

// NewQAService creates a new QAService.
func NewQAService(repo repository.QAProxyRepository, log *logger.Logger) QAService {
	return &qaService{repo: repo, log: log}
}

func (s *qaService) ListDocuments(ctx context.Context) ([]dto.QADocument, error) {
	docs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []dto.QADocument{}
	}
	s.log.DebugContext(ctx, "Listed QA documents", logger.IntField("count", len(docs)))
	return docs, nil
}

func (s *qaService) Answer(ctx context.Context, prompt string) (*dto.QAAnswerResponse, error) {
	answer, err := s.repo.Answer(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &dto.QAAnswerResponse{Answer: json.RawMessage(answer)}, nil
}
