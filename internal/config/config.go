package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/oceancolor-service/internal/domain"
	appvalidator "github.com/oceancolor-service/internal/pkg/validator"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Log        LogConfig
	Source     SourceConfig
	Area       AreaConfig
	Boundary   BoundaryConfig
	Pipeline   PipelineConfig
	Classifier ClassifierConfig
	Scheduler  SchedulerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// StoreConfig выбирает драйвер хранилища результатов.
type StoreConfig struct {
	Driver     string `validate:"oneof=postgres sqlite"`
	SQLitePath string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	TileCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// SourceConfig - активный источник тайлов (закрытое перечисление).
type SourceConfig struct {
	Name           string
	BaseURL        string `validate:"required,url"`
	RequestTimeout time.Duration

	// Source резолвится из Name при загрузке; неизвестное имя - ошибка.
	Source domain.TileSource `validate:"-"`
}

// AreaConfig - целевая акватория и уровень детализации.
type AreaConfig struct {
	Bounds domain.Bounds `validate:"-"`
	Zoom   int           `validate:"gte=0,lte=18"`
}

type BoundaryConfig struct {
	// Path - GeoJSON или ESRI shapefile с полигонами суши.
	Path string `validate:"required"`
}

type PipelineConfig struct {
	// ScaleFactor > 1 включает бикубическое масштабирование перед анализом.
	ScaleFactor float64 `validate:"gte=1"`
	// ContrastNormalize включает CLAHE по каналу яркости.
	ContrastNormalize bool
	ArtifactsEnabled  bool
	ArtifactsDir      string
}

type ClassifierConfig struct {
	Strategy       string `validate:"oneof=threshold kmeans"`
	TimeZone       string `validate:"required"`
	DayStartHour   int    `validate:"gte=0,lte=23"`
	NightStartHour int    `validate:"gte=0,lte=23"`

	ThickCloudCoverage float64 `validate:"gt=0,lte=1"`
	HSV                domain.HSVRanges

	// Прореживание пикселей для kmeans-стратегии.
	SampleStride int `validate:"gte=1"`
}

type SchedulerConfig struct {
	Interval   time.Duration
	RunOnStart bool
	// MetricsAddr - адрес prometheus-листенера воркера.
	MetricsAddr string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: в контейнере всё приходит переменными окружения.
	_ = viper.ReadInConfig()

	setDefaults()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Store: StoreConfig{
			Driver:     viper.GetString("STORE_DRIVER"),
			SQLitePath: viper.GetString("STORE_SQLITE_PATH"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:      viper.GetBool("REDIS_ENABLED"),
			Host:         viper.GetString("REDIS_HOST"),
			Port:         viper.GetInt("REDIS_PORT"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			TileCacheTTL: time.Duration(viper.GetInt("REDIS_TILE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Source: SourceConfig{
			Name:           viper.GetString("TILE_SOURCE"),
			BaseURL:        viper.GetString("TILE_SOURCE_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("TILE_REQUEST_TIMEOUT_MS")) * time.Millisecond,
		},
		Area: AreaConfig{
			Bounds: domain.Bounds{
				North: viper.GetFloat64("AREA_NORTH"),
				South: viper.GetFloat64("AREA_SOUTH"),
				West:  viper.GetFloat64("AREA_WEST"),
				East:  viper.GetFloat64("AREA_EAST"),
			},
			Zoom: viper.GetInt("AREA_ZOOM"),
		},
		Boundary: BoundaryConfig{
			Path: viper.GetString("BOUNDARY_PATH"),
		},
		Pipeline: PipelineConfig{
			ScaleFactor:       viper.GetFloat64("PIPELINE_SCALE_FACTOR"),
			ContrastNormalize: viper.GetBool("PIPELINE_CONTRAST_NORMALIZE"),
			ArtifactsEnabled:  viper.GetBool("PIPELINE_ARTIFACTS_ENABLED"),
			ArtifactsDir:      viper.GetString("PIPELINE_ARTIFACTS_DIR"),
		},
		Classifier: ClassifierConfig{
			Strategy:           viper.GetString("CLASSIFIER_STRATEGY"),
			TimeZone:           viper.GetString("CLASSIFIER_TIME_ZONE"),
			DayStartHour:       viper.GetInt("CLASSIFIER_DAY_START_HOUR"),
			NightStartHour:     viper.GetInt("CLASSIFIER_NIGHT_START_HOUR"),
			ThickCloudCoverage: viper.GetFloat64("CLASSIFIER_THICK_CLOUD_COVERAGE"),
			HSV: domain.HSVRanges{
				CloudSatMax: uint8(viper.GetInt("CLASSIFIER_CLOUD_SAT_MAX")),
				CloudValMin: uint8(viper.GetInt("CLASSIFIER_CLOUD_VAL_MIN")),
				BlueHueMin:  uint8(viper.GetInt("CLASSIFIER_BLUE_HUE_MIN")),
				BlueHueMax:  uint8(viper.GetInt("CLASSIFIER_BLUE_HUE_MAX")),
				BlueSatMin:  uint8(viper.GetInt("CLASSIFIER_BLUE_SAT_MIN")),
				BlueValMin:  uint8(viper.GetInt("CLASSIFIER_BLUE_VAL_MIN")),
			},
			SampleStride: viper.GetInt("CLASSIFIER_SAMPLE_STRIDE"),
		},
		Scheduler: SchedulerConfig{
			Interval:    time.Duration(viper.GetInt("SCHEDULER_INTERVAL_SEC")) * time.Second,
			RunOnStart:  viper.GetBool("SCHEDULER_RUN_ON_START"),
			MetricsAddr: viper.GetString("SCHEDULER_METRICS_ADDR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_ENV", "development")

	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("STORE_SQLITE_PATH", "data/oceancolor.db")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	viper.SetDefault("REDIS_TILE_CACHE_TTL", 3600)

	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("TILE_SOURCE", "himawari")
	viper.SetDefault("TILE_REQUEST_TIMEOUT_MS", 5000)

	// Восточно-Китайское море, устье Янцзы.
	viper.SetDefault("AREA_NORTH", 31.290)
	viper.SetDefault("AREA_SOUTH", 29.400)
	viper.SetDefault("AREA_WEST", 121.200)
	viper.SetDefault("AREA_EAST", 123.400)
	viper.SetDefault("AREA_ZOOM", 7)

	viper.SetDefault("BOUNDARY_PATH", "data/geojson/china.geojson")

	viper.SetDefault("PIPELINE_SCALE_FACTOR", 1.0)
	viper.SetDefault("PIPELINE_CONTRAST_NORMALIZE", false)
	viper.SetDefault("PIPELINE_ARTIFACTS_ENABLED", true)
	viper.SetDefault("PIPELINE_ARTIFACTS_DIR", "data/output")

	viper.SetDefault("CLASSIFIER_STRATEGY", "threshold")
	viper.SetDefault("CLASSIFIER_TIME_ZONE", "Asia/Shanghai")
	viper.SetDefault("CLASSIFIER_DAY_START_HOUR", 7)
	viper.SetDefault("CLASSIFIER_NIGHT_START_HOUR", 17)
	viper.SetDefault("CLASSIFIER_THICK_CLOUD_COVERAGE", 0.7)
	viper.SetDefault("CLASSIFIER_CLOUD_SAT_MAX", 60)
	viper.SetDefault("CLASSIFIER_CLOUD_VAL_MIN", 144)
	viper.SetDefault("CLASSIFIER_BLUE_HUE_MIN", 100)
	viper.SetDefault("CLASSIFIER_BLUE_HUE_MAX", 140)
	viper.SetDefault("CLASSIFIER_BLUE_SAT_MIN", 40)
	viper.SetDefault("CLASSIFIER_BLUE_VAL_MIN", 20)
	viper.SetDefault("CLASSIFIER_SAMPLE_STRIDE", 4)

	viper.SetDefault("SCHEDULER_INTERVAL_SEC", 600)
	viper.SetDefault("SCHEDULER_RUN_ON_START", true)
	viper.SetDefault("SCHEDULER_METRICS_ADDR", ":9090")
}

// Validate проверяет конфигурацию и резолвит закрытые перечисления.
// Падаем на старте, а не посреди цикла анализа.
func (c *Config) Validate() error {
	if err := appvalidator.Validate(&c.Store); err != nil {
		return fmt.Errorf("store config: %w", err)
	}
	if err := appvalidator.Validate(&c.Source); err != nil {
		return fmt.Errorf("source config: %w", err)
	}
	if err := appvalidator.Validate(&c.Area); err != nil {
		return fmt.Errorf("area config: %w", err)
	}
	if err := appvalidator.Validate(&c.Boundary); err != nil {
		return fmt.Errorf("boundary config: %w", err)
	}
	if err := appvalidator.Validate(&c.Pipeline); err != nil {
		return fmt.Errorf("pipeline config: %w", err)
	}
	if err := appvalidator.Validate(&c.Classifier); err != nil {
		return fmt.Errorf("classifier config: %w", err)
	}

	source, err := domain.SourceByName(c.Source.Name)
	if err != nil {
		return fmt.Errorf("source config: %w", err)
	}
	c.Source.Source = source

	if !c.Area.Bounds.Valid() {
		return fmt.Errorf("area config: invalid bounds %+v (need north > south, east > west)", c.Area.Bounds)
	}
	if c.Classifier.DayStartHour >= c.Classifier.NightStartHour {
		return fmt.Errorf("classifier config: day start hour %d must be before night start hour %d",
			c.Classifier.DayStartHour, c.Classifier.NightStartHour)
	}
	if c.Classifier.HSV.BlueHueMin > c.Classifier.HSV.BlueHueMax {
		return fmt.Errorf("classifier config: blue hue range inverted")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
