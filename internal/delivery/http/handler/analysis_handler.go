package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/pkg/errors"
	"github.com/oceancolor-service/internal/pkg/utils"
	"github.com/oceancolor-service/internal/pkg/validator"
	"github.com/oceancolor-service/internal/usecase"
	"github.com/oceancolor-service/internal/usecase/dto"
)

const defaultListLimit = 100

// AnalysisHandler обрабатывает запросы к результатам анализа
type AnalysisHandler struct {
	analysisUC *usecase.AnalysisUseCase
	logger     *zap.Logger
}

// NewAnalysisHandler создает новый экземпляр AnalysisHandler
func NewAnalysisHandler(analysisUC *usecase.AnalysisUseCase, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
		logger:     logger,
	}
}

// List godoc
// @Summary List analysis results
// @Description Возвращает сохранённые результаты анализа, новые первыми
// @Tags Analyses
// @Produce json
// @Param limit query int false "Максимум записей (по умолчанию 100)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/analyses [get]
func (h *AnalysisHandler) List(c *fiber.Ctx) error {
	req := dto.ListAnalysesRequest{Limit: defaultListLimit}
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	records, err := h.analysisUC.List(c.Context(), req.Limit)
	if err != nil {
		h.logger.Error("Failed to list analyses", zap.Error(err))
		return utils.SendError(c, err)
	}

	responses := make([]dto.AnalysisResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, dto.FromRecord(r))
	}

	return utils.SendSuccess(c, responses, &utils.Meta{Total: len(responses), Limit: req.Limit})
}

// GetByTimestamp godoc
// @Summary Get analysis by timestamp
// @Description Возвращает результат анализа одного снимка
// @Tags Analyses
// @Produce json
// @Param timestamp path int true "Unix timestamp снимка"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/analyses/{timestamp} [get]
func (h *AnalysisHandler) GetByTimestamp(c *fiber.Ctx) error {
	timestamp, err := parseTimestamp(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	record, err := h.analysisUC.GetByTimestamp(c.Context(), timestamp)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.FromRecord(*record), nil)
}

// DebugAnalyze godoc
// @Summary Re-run analysis for a timestamp
// @Description Разовый прогон конвейера с опциональным переопределением HSV-порогов; результат не сохраняется
// @Tags Debug
// @Accept json
// @Produce json
// @Param timestamp path int true "Unix timestamp снимка"
// @Param request body dto.DebugAnalyzeRequest false "Переопределение порогов"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/debug/analyze/{timestamp} [post]
func (h *AnalysisHandler) DebugAnalyze(c *fiber.Ctx) error {
	timestamp, err := parseTimestamp(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.DebugAnalyzeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
	}

	var override *domain.HSVRanges
	if req.HSV != nil {
		if err := validator.Validate(req.HSV); err != nil {
			return utils.SendError(c, errors.ErrInvalidHSVRanges.WithDetails(map[string]interface{}{
				"reason": err.Error(),
			}))
		}
		ranges := req.HSV.ToDomain()
		override = &ranges
	}

	h.logger.Info("Manual analysis requested",
		zap.Int64("timestamp", timestamp),
		zap.Bool("hsv_override", override != nil))

	outcome, err := h.analysisUC.DebugRun(c.Context(), timestamp, override)
	if err != nil {
		return utils.SendError(c, err)
	}
	if outcome.Status == domain.StatusDownloadFailed {
		return utils.SendError(c, errors.ErrDownloadFailed.WithDetails(map[string]interface{}{
			"totalTiles": outcome.TotalTiles,
		}))
	}

	return utils.SendSuccess(c, dto.DebugAnalyzeResponse{Outcome: outcome}, nil)
}

func parseTimestamp(c *fiber.Ctx) (int64, error) {
	timestamp, err := strconv.ParseInt(c.Params("timestamp"), 10, 64)
	if err != nil || timestamp <= 0 {
		return 0, errors.ErrInvalidTimestamp
	}
	return timestamp, nil
}
