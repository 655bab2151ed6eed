package domain

import "time"

// Status - терминальное состояние конвейера анализа для одного timestamp.
type Status string

const (
	StatusNight              Status = "night"
	StatusDownloadFailed     Status = "download_failed"
	StatusBoundaryFailed     Status = "boundary_failed"
	StatusNoData             Status = "no_data"
	StatusThickCloud         Status = "thick_cloud"
	StatusInsufficientPixels Status = "insufficient_pixels"
	StatusCompleted          Status = "completed"
	StatusError              Status = "error"
)

// PixelCounts - результат попиксельной классификации океана.
// Инвариант: Cloud + Blue + Yellow == Total (разбиение полное и
// непересекающееся: облака решаются первыми, синяя вода второй,
// жёлтая/мутная вода - остаток).
type PixelCounts struct {
	Cloud  int `json:"cloudPixelCount"`
	Blue   int `json:"bluePixelCount"`
	Yellow int `json:"yellowPixelCount"`
	Total  int `json:"totalOceanPixels"`
}

// ClassificationOutcome - итог одного прогона конвейера.
// Числовые метрики заполнены только при Status == completed
// (thick_cloud дополнительно несёт CloudCoverage).
type ClassificationOutcome struct {
	Timestamp     int64       `json:"timestamp"`
	Status        Status      `json:"status"`
	SeaBlueness   *float64    `json:"seaBlueness,omitempty"`
	CloudCoverage *float64    `json:"cloudCoverage,omitempty"`
	Pixels        PixelCounts `json:"pixels"`

	// Диагностика мозаики: сколько тайлов удалось скачать.
	DownloadedTiles int `json:"downloadedTiles"`
	TotalTiles      int `json:"totalTiles"`
}

// Persistable сообщает, должен ли исход сохраняться в хранилище.
// download_failed и boundary_failed не сохраняются: timestamp остаётся
// кандидатом на повтор, когда сервер тайлов или файл границ оживут.
func (o ClassificationOutcome) Persistable() bool {
	return o.Status != StatusDownloadFailed && o.Status != StatusBoundaryFailed
}

// Record приводит исход к записи хранилища.
func (o ClassificationOutcome) Record() AnalysisRecord {
	return AnalysisRecord{
		Timestamp:     o.Timestamp,
		Status:        string(o.Status),
		SeaBlueness:   o.SeaBlueness,
		CloudCoverage: o.CloudCoverage,
	}
}

// AnalysisRecord - сохраняемая запись: одна строка на timestamp,
// уникальность обеспечивается хранилищем (upsert по timestamp).
type AnalysisRecord struct {
	ID            int64     `db:"id" json:"id"`
	Timestamp     int64     `db:"timestamp" json:"timestamp"`
	Status        string    `db:"status" json:"status"`
	SeaBlueness   *float64  `db:"sea_blueness" json:"seaBlueness,omitempty"`
	CloudCoverage *float64  `db:"cloud_coverage" json:"cloudCoverage,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// HSVRanges - пороги классификатора в шкале OpenCV: H в [0,180),
// S и V в [0,255]. Задаются конфигурацией; debug-эндпоинт может
// переопределить их на один прогон.
type HSVRanges struct {
	CloudSatMax uint8 `json:"cloudSatMax"`
	CloudValMin uint8 `json:"cloudValMin"`
	BlueHueMin  uint8 `json:"blueHueMin"`
	BlueHueMax  uint8 `json:"blueHueMax"`
	BlueSatMin  uint8 `json:"blueSatMin"`
	BlueValMin  uint8 `json:"blueValMin"`
}
