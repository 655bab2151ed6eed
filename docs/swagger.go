// Package docs Ocean Color Service API.
//
// Сервис анализа цвета прибрежной воды по спутниковым снимкам.
// Периодически собирает мозаику тайлов, маскирует сушу по береговой
// границе и классифицирует пиксели океана на облака, синюю и жёлтую
// (мутную) воду.
//
// Основные возможности:
// - Периодический прогон новых timestamp'ов источника тайлов
// - Классификация по HSV-порогам или кластеризацией k-means
// - История результатов анализа (blueness, облачность, статус)
// - Отладочный прогон произвольного timestamp'а с переопределением порогов
//
//	Schemes: http, https
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
