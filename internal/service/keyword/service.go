package keyword

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"rankwatch/internal/config"
	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
)

var (
	ErrKeywordNotFound = errors.New("keyword not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrImportEmpty     = errors.New("import file contains no keywords")
)

type ImportResult struct {
	Parsed   int `json:"parsed"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type Service interface {
	Create(ctx context.Context, projectID uuid.UUID, input domain.CreateKeywordInput) (*domain.Keyword, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Keyword, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateKeywordInput) (*domain.Keyword, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Keyword], error)

	// ImportFromObject bulk-imports keywords from a CSV object
	// (text,category,priority,location,language) stored in the imports bucket.
	ImportFromObject(ctx context.Context, projectID uuid.UUID, objectName string) (*ImportResult, error)
}

type service struct {
	keywordRepo repository.KeywordRepository
	projectRepo repository.ProjectRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(keywordRepo repository.KeywordRepository, projectRepo repository.ProjectRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		keywordRepo: keywordRepo,
		projectRepo: projectRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Create(ctx context.Context, projectID uuid.UUID, input domain.CreateKeywordInput) (*domain.Keyword, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}

	keyword := &domain.Keyword{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Text:         strings.TrimSpace(input.Text),
		Category:     input.Category,
		Priority:     priority,
		Location:     input.Location,
		Language:     input.Language,
		SearchVolume: input.SearchVolume,
		Difficulty:   input.Difficulty,
	}

	if err := s.keywordRepo.Create(ctx, keyword); err != nil {
		return nil, err
	}
	return keyword, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Keyword, error) {
	keyword, err := s.keywordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, ErrKeywordNotFound
	}
	return keyword, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateKeywordInput) (*domain.Keyword, error) {
	keyword, err := s.keywordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, ErrKeywordNotFound
	}

	if input.Category != nil {
		keyword.Category = *input.Category
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, fmt.Errorf("invalid priority %q", *input.Priority)
		}
		keyword.Priority = *input.Priority
	}
	if input.Location != nil {
		keyword.Location = *input.Location
	}
	if input.Language != nil {
		keyword.Language = *input.Language
	}
	if input.SearchVolume != nil {
		keyword.SearchVolume = *input.SearchVolume
	}
	if input.Difficulty != nil {
		keyword.Difficulty = *input.Difficulty
	}

	if err := s.keywordRepo.Update(ctx, keyword); err != nil {
		return nil, err
	}
	return keyword, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	keyword, err := s.keywordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if keyword == nil {
		return ErrKeywordNotFound
	}
	return s.keywordRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Keyword], error) {
	keywords, total, err := s.keywordRepo.ListByProjectPaged(ctx, projectID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Keyword]{}, err
	}
	return domain.NewPaginatedResponse(keywords, params.Page, params.PageSize, total), nil
}

func (s *service) ImportFromObject(ctx context.Context, projectID uuid.UUID, objectName string) (*ImportResult, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	object, err := s.minioClient.GetObject(ctx, s.cfg.MinIOBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open import object: %w", err)
	}
	defer object.Close()

	keywords, err := ParseCSV(object, projectID)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, ErrImportEmpty
	}

	inserted, err := s.keywordRepo.CreateBatch(ctx, keywords)
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Parsed:   len(keywords),
		Imported: inserted,
		Skipped:  len(keywords) - inserted,
	}, nil
}

// ParseCSV reads keyword rows of the form
// text,category,priority,location,language. A header row starting with
// "text" is skipped; blank lines and rows without a keyword text are ignored.
func ParseCSV(r io.Reader, projectID uuid.UUID) ([]domain.Keyword, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var keywords []domain.Keyword
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse import csv: %w", err)
		}

		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "text") {
				continue
			}
		}

		text := strings.TrimSpace(record[0])
		if text == "" {
			continue
		}

		keyword := domain.Keyword{
			ID:        uuid.New(),
			ProjectID: projectID,
			Text:      text,
			Priority:  domain.PriorityMedium,
		}
		if len(record) > 1 {
			if category := strings.TrimSpace(record[1]); category != "" {
				keyword.Category = &category
			}
		}
		if len(record) > 2 {
			if priority := domain.KeywordPriority(strings.ToLower(strings.TrimSpace(record[2]))); priority.IsValid() {
				keyword.Priority = priority
			}
		}
		if len(record) > 3 {
			if location := strings.TrimSpace(record[3]); location != "" {
				keyword.Location = &location
			}
		}
		if len(record) > 4 {
			if language := strings.TrimSpace(record[4]); language != "" {
				keyword.Language = &language
			}
		}
		keywords = append(keywords, keyword)
	}
	return keywords, nil
}
