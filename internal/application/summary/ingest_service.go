package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domain "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// ErrInvalidRequest 请求体不是 { "entities": [...] }
var ErrInvalidRequest = errors.New("Invalid request format. Expected { entities: [...] }")

// BatchValidationError 批次校验失败，包含所有不合法的实体
type BatchValidationError struct {
	Errors []*domain.ValidationError
}

func (e *BatchValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e.Errors[0].Error(), len(e.Errors)-1)
}

// Details 每个实体的错误信息
func (e *BatchValidationError) Details() []string {
	out := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		out = append(out, ve.Error())
	}
	return out
}

// Unwrap 支持 errors.Is 匹配具体的领域错误
func (e *BatchValidationError) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for _, ve := range e.Errors {
		out = append(out, ve)
	}
	return out
}

// dateLayouts 支持的 dateCreated 格式，无时区时按 UTC 处理
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误信息使用 JSON 字段名
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// IngestService 摘要写入用例
type IngestService struct {
	repo      domain.Repository
	domainSvc *domain.Service
	detector  LanguageDetector
	recorder  Recorder
	logger    *slog.Logger
}

// NewIngestService 创建写入服务
func NewIngestService(
	repo domain.Repository,
	domainSvc *domain.Service,
	detector LanguageDetector,
	recorder Recorder,
) *IngestService {
	return &IngestService{
		repo:      repo,
		domainSvc: domainSvc,
		detector:  detector,
		recorder:  recorderOrNoop(recorder),
		logger:    log.NewModuleLogger("summary", "ingest"),
	}
}

// pendingEntity 校验通过、等待写入的实体
type pendingEntity struct {
	record   *domain.Record
	insights []InsightDTO
}

// Ingest 校验整个批次后在一个事务中写入
// 任意实体校验失败则整个批次被拒绝，不写入任何数据
func (s *IngestService) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	logger := log.FromContext(ctx, s.logger)

	if req == nil || req.Entities == nil {
		s.recorder.IngestRejected()
		return nil, ErrInvalidRequest
	}

	pending, err := s.prepare(ctx, req.Entities)
	if err != nil {
		s.recorder.IngestRejected()
		logger.Warn("Ingestion batch rejected",
			"entities", len(req.Entities),
			"error", err,
		)
		return nil, err
	}

	result := &IngestResult{
		Success:       true,
		Conversations: make([]InsertedRef, 0, len(pending)),
	}
	insightTotal := 0

	err = s.repo.WithinTx(ctx, func(tx domain.Repository) error {
		for _, p := range pending {
			id, err := tx.InsertSummary(ctx, p.record)
			if err != nil {
				return fmt.Errorf("summary %q: %w", p.record.SummaryID, err)
			}
			for i := range p.insights {
				in := toDomainInsight(&p.insights[i])
				if _, err := tx.InsertInsight(ctx, id, in); err != nil {
					return fmt.Errorf("insight %d of summary %q: %w", i, p.record.SummaryID, err)
				}
			}
			insightTotal += len(p.insights)
			result.Conversations = append(result.Conversations, InsertedRef{ID: id, SummaryID: p.record.SummaryID})
		}
		return nil
	})
	if err != nil {
		s.recorder.IngestFailed()
		logger.Error("Ingestion batch failed",
			"entities", len(pending),
			"error", err,
		)
		return nil, fmt.Errorf("failed to persist batch: %w", err)
	}

	result.Inserted = len(result.Conversations)
	s.recorder.IngestAccepted(result.Inserted, insightTotal)
	logger.Info("Ingestion batch stored",
		"summaries", result.Inserted,
		"insights", insightTotal,
	)
	return result, nil
}

// prepare 校验所有实体并转换为领域记录
func (s *IngestService) prepare(ctx context.Context, entities []SummaryEntity) ([]pendingEntity, error) {
	logger := log.FromContext(ctx, s.logger)

	var verr BatchValidationError
	pending := make([]pendingEntity, 0, len(entities))

	for i := range entities {
		e := &entities[i]

		if err := validate.Struct(e); err != nil {
			verr.Errors = append(verr.Errors, &domain.ValidationError{Index: i, Err: fieldError(err)})
			continue
		}

		dateCreated, err := parseDateCreated(e.DateCreated)
		if err != nil {
			verr.Errors = append(verr.Errors, &domain.ValidationError{Index: i, Err: domain.ErrInvalidDateCreated})
			continue
		}

		record := &domain.Record{
			SummaryType:    domain.SummaryType(e.SummaryType),
			MediaType:      e.MediaType,
			Language:       e.Language,
			SummaryID:      strings.TrimSpace(e.SummaryID),
			AgentID:        e.AgentID,
			SourceID:       e.SourceID,
			Summary:        e.Summary,
			Generated:      e.Generated,
			DateCreated:    dateCreated,
			ConversationID: strings.TrimSpace(e.ConversationID),
		}
		if err := s.domainSvc.Validate(record); err != nil {
			verr.Errors = append(verr.Errors, &domain.ValidationError{Index: i, Err: err})
			continue
		}

		if e.Insights.DecodeErr != nil {
			logger.Warn("Failed to decode insights string, treating as empty",
				"index", i,
				"summary_id", record.SummaryID,
				"error", e.Insights.DecodeErr,
			)
		}

		if record.Language == "" && s.detector != nil {
			record.Language = s.detector.Detect(record.Summary)
		}

		pending = append(pending, pendingEntity{record: record, insights: e.Insights.Items})
	}

	if len(verr.Errors) > 0 {
		return nil, &verr
	}
	return pending, nil
}

// fieldError 将 validator 错误映射为领域错误
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "summaryType":
		return fmt.Errorf("%w: %q", domain.ErrInvalidSummaryType, fmt.Sprint(fe.Value()))
	case "summaryId":
		if fe.Tag() == "required" {
			return domain.ErrMissingSummaryID
		}
	case "dateCreated":
		return domain.ErrMissingDateCreated
	}
	if fe.Param() != "" {
		return fmt.Errorf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%s failed %s", fe.Field(), fe.Tag())
}

// parseDateCreated 解析 dateCreated
func parseDateCreated(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDateCreated
}

func toDomainInsight(dto *InsightDTO) *domain.Insight {
	return &domain.Insight{
		Type:        dto.Type,
		Title:       dto.Title,
		Description: dto.Description,
		Outcome:     dto.Outcome,
	}
}
