package dto

import "github.com/oceancolor-service/internal/domain"

// HSVOverrideRequest - разовое переопределение порогов классификатора
// для debug-прогона. Значения в шкале OpenCV: H в [0,180), S и V в [0,255].
type HSVOverrideRequest struct {
	CloudSatMax uint8 `json:"cloudSatMax" validate:"lte=255"`
	CloudValMin uint8 `json:"cloudValMin" validate:"lte=255"`
	BlueHueMin  uint8 `json:"blueHueMin" validate:"lt=180"`
	BlueHueMax  uint8 `json:"blueHueMax" validate:"lt=180"`
	BlueSatMin  uint8 `json:"blueSatMin" validate:"lte=255"`
	BlueValMin  uint8 `json:"blueValMin" validate:"lte=255"`
}

// ToDomain приводит запрос к доменным порогам.
func (r *HSVOverrideRequest) ToDomain() domain.HSVRanges {
	return domain.HSVRanges{
		CloudSatMax: r.CloudSatMax,
		CloudValMin: r.CloudValMin,
		BlueHueMin:  r.BlueHueMin,
		BlueHueMax:  r.BlueHueMax,
		BlueSatMin:  r.BlueSatMin,
		BlueValMin:  r.BlueValMin,
	}
}

// DebugAnalyzeRequest - тело ручного прогона анализа.
// HSV опционален: без него используются пороги из конфигурации.
type DebugAnalyzeRequest struct {
	HSV *HSVOverrideRequest `json:"hsv,omitempty"`
}

// ListAnalysesRequest - параметры листинга результатов.
type ListAnalysesRequest struct {
	Limit int `query:"limit" validate:"gte=1,lte=1000"`
}

// AnalysisResponse - сохранённая запись анализа.
type AnalysisResponse struct {
	Timestamp     int64    `json:"timestamp"`
	Status        string   `json:"status"`
	SeaBlueness   *float64 `json:"seaBlueness,omitempty"`
	CloudCoverage *float64 `json:"cloudCoverage,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// FromRecord приводит запись хранилища к ответу API.
func FromRecord(r domain.AnalysisRecord) AnalysisResponse {
	return AnalysisResponse{
		Timestamp:     r.Timestamp,
		Status:        r.Status,
		SeaBlueness:   r.SeaBlueness,
		CloudCoverage: r.CloudCoverage,
		CreatedAt:     r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// DebugAnalyzeResponse - полный исход разового прогона (не сохраняется).
type DebugAnalyzeResponse struct {
	Outcome domain.ClassificationOutcome `json:"outcome"`
}
