package domain

import (
	"fmt"
	"sort"
	"time"
)

// TileSource - неизменяемое описание источника тайлов. Набор источников
// закрытый: выбор по строковому ключу проверяется при загрузке конфигурации,
// неизвестный селектор - ошибка старта, а не ошибка времени выполнения.
type TileSource struct {
	// Name - ключ источника в конфигурации.
	Name string
	// DisplayName - человекочитаемое имя для логов.
	DisplayName string
	// TimestampJSONKey - имя поля с массивом timestamp'ов в ответе
	// источника; пустая строка означает, что ответ - голый JSON-массив.
	TimestampJSONKey string
	// dateTimePath - источник адресует тайлы парой дата/время (UTC),
	// а не сырым timestamp.
	dateTimePath bool

	timestampsPath string
	tilePathFmt    string
}

var tileSources = map[string]TileSource{
	"himawari": {
		Name:           "himawari",
		DisplayName:    "Himawari-8/9 GIS mirror",
		timestampsPath: "/himawari/timestamps.json",
		tilePathFmt:    "/himawari/%d/%d/%d/%d.jpg", // zoom/row/col/timestamp
	},
	"zoom-earth": {
		Name:             "zoom-earth",
		DisplayName:      "Zoom Earth",
		TimestampJSONKey: "timestamps",
		dateTimePath:     true,
		timestampsPath:   "/times/geocolor.json",
	},
}

// SourceByName возвращает источник по ключу конфигурации.
func SourceByName(name string) (TileSource, error) {
	s, ok := tileSources[name]
	if !ok {
		return TileSource{}, fmt.Errorf("unknown tile source %q (known: %v)", name, SourceNames())
	}
	return s, nil
}

// SourceNames возвращает отсортированный список известных источников.
func SourceNames() []string {
	names := make([]string, 0, len(tileSources))
	for n := range tileSources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TimestampsURL возвращает URL списка доступных timestamp'ов.
func (s TileSource) TimestampsURL(baseURL string) string {
	return baseURL + s.timestampsPath
}

// TileURL возвращает URL тайла для timestamp'а.
func (s TileSource) TileURL(baseURL string, addr TileAddress, ts int64) string {
	if s.dateTimePath {
		t := time.Unix(ts, 0).UTC()
		return fmt.Sprintf("%s/geocolor/%s/%s/%d/%d/%d.jpg",
			baseURL, t.Format("2006-01-02"), t.Format("1504"), addr.Zoom, addr.Row, addr.Col)
	}
	return baseURL + fmt.Sprintf(s.tilePathFmt, addr.Zoom, addr.Row, addr.Col, ts)
}
