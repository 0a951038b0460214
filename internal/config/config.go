package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
	"github.com/pickemhq/pickem-pool/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	DeadlineOffsets                map[game.Slot]time.Duration
	DeadlineDefaultOffset          time.Duration
	RecomputeMaxWorkers            int
	AnubisBaseURL                  string
	AnubisIntrospectURL            string
	AnubisAdminKey                 string
	AnubisTimeout                  time.Duration
	AnubisCircuitEnabled           bool
	AnubisCircuitFailureCount      int
	AnubisCircuitOpenTimeout       time.Duration
	AnubisCircuitHalfOpenMaxReq    int
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	ScoreFeedEnabled               bool
	ScoreFeedBaseURL               string
	ScoreFeedToken                 string
	ScoreFeedTimeout               time.Duration
	ScoreFeedMaxRetries            int
	ScoreFeedMaxConcurrentWeeks    int
	ScoreFeedCircuitEnabled        bool
	ScoreFeedCircuitFailureCount   int
	ScoreFeedCircuitOpenTimeout    time.Duration
	ScoreFeedCircuitHalfOpenMaxReq int
	InternalJobToken               string
	QStashEnabled                  bool
	QStashBaseURL                  string
	QStashToken                    string
	QStashTargetBaseURL            string
	QStashRetries                  int
	QStashCircuitEnabled           bool
	QStashCircuitFailureCount      int
	QStashCircuitOpenTimeout       time.Duration
	QStashCircuitHalfOpenMaxReq    int
	LogLevel                       logging.Level
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	deadlineDefault, err := getEnvAsDuration("DEADLINE_OFFSET_DEFAULT", 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse DEADLINE_OFFSET_DEFAULT: %w", err)
	}
	if deadlineDefault <= 0 {
		return Config{}, fmt.Errorf("DEADLINE_OFFSET_DEFAULT must be > 0")
	}
	deadlineOffsets := make(map[game.Slot]time.Duration)
	for slot, envKey := range map[game.Slot]string{
		game.SlotEarly:       "DEADLINE_OFFSET_EARLY",
		game.SlotLate:        "DEADLINE_OFFSET_LATE",
		game.SlotThursday:    "DEADLINE_OFFSET_THURSDAY",
		game.SlotSundayNight: "DEADLINE_OFFSET_SUNDAY_NIGHT",
		game.SlotMonday:      "DEADLINE_OFFSET_MONDAY",
	} {
		offset, offErr := getEnvAsDuration(envKey, 0)
		if offErr != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envKey, offErr)
		}
		if offset < 0 {
			return Config{}, fmt.Errorf("%s must be >= 0", envKey)
		}
		if offset > 0 {
			deadlineOffsets[slot] = offset
		}
	}

	recomputeMaxWorkers, err := getEnvAsInt("RECOMPUTE_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMPUTE_MAX_WORKERS: %w", err)
	}
	if recomputeMaxWorkers < 1 {
		return Config{}, fmt.Errorf("RECOMPUTE_MAX_WORKERS must be >= 1")
	}

	scoreFeedEnabled, err := strconv.ParseBool(getEnv("SCOREFEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_ENABLED: %w", err)
	}
	scoreFeedBaseURL := strings.TrimSpace(getEnv("SCOREFEED_BASE_URL", ""))
	scoreFeedToken := strings.TrimSpace(getEnv("SCOREFEED_TOKEN", ""))
	if scoreFeedEnabled && scoreFeedBaseURL == "" {
		return Config{}, fmt.Errorf("SCOREFEED_BASE_URL is required when SCOREFEED_ENABLED=true")
	}
	scoreFeedTimeout, err := getEnvAsDuration("SCOREFEED_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_TIMEOUT: %w", err)
	}
	if scoreFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("SCOREFEED_TIMEOUT must be > 0")
	}
	scoreFeedMaxRetries, err := getEnvAsInt("SCOREFEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_MAX_RETRIES: %w", err)
	}
	if scoreFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCOREFEED_MAX_RETRIES must be >= 0")
	}
	scoreFeedMaxConcurrentWeeks, err := getEnvAsInt("SCOREFEED_MAX_CONCURRENT_WEEKS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_MAX_CONCURRENT_WEEKS: %w", err)
	}
	if scoreFeedMaxConcurrentWeeks < 1 {
		return Config{}, fmt.Errorf("SCOREFEED_MAX_CONCURRENT_WEEKS must be >= 1")
	}
	scoreFeedCircuitEnabled, err := strconv.ParseBool(getEnv("SCOREFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_ENABLED: %w", err)
	}
	scoreFeedCircuitFailureCount, err := getEnvAsInt("SCOREFEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if scoreFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SCOREFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	scoreFeedCircuitOpenTimeout, err := getEnvAsDuration("SCOREFEED_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if scoreFeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SCOREFEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	scoreFeedCircuitHalfOpenMaxReq, err := getEnvAsInt("SCOREFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if scoreFeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SCOREFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	qstashEnabled, err := strconv.ParseBool(getEnv("QSTASH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_ENABLED: %w", err)
	}
	qstashRetries, err := getEnvAsInt("QSTASH_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	if qstashRetries < 0 {
		return Config{}, fmt.Errorf("QSTASH_RETRIES must be >= 0")
	}
	qstashCircuitEnabled, err := strconv.ParseBool(getEnv("QSTASH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_ENABLED: %w", err)
	}
	qstashCircuitFailureCount, err := getEnvAsInt("QSTASH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if qstashCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	qstashCircuitOpenTimeout, err := getEnvAsDuration("QSTASH_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if qstashCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	qstashCircuitHalfOpenMaxReq, err := getEnvAsInt("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if qstashCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	qstashBaseURL := strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io"))
	qstashToken := strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	qstashTargetBaseURL := strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if qstashEnabled {
		if qstashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if qstashTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 60*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	anubisTimeout, err := getEnvAsDuration("ANUBIS_TIMEOUT", 3*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_TIMEOUT: %w", err)
	}
	anubisCircuitEnabled, err := strconv.ParseBool(getEnv("ANUBIS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_ENABLED: %w", err)
	}
	anubisCircuitFailureCount, err := getEnvAsInt("ANUBIS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if anubisCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	anubisCircuitOpenTimeout, err := getEnvAsDuration("ANUBIS_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if anubisCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	anubisCircuitHalfOpenMaxReq, err := getEnvAsInt("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if anubisCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "pickem-pool-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          getEnv("DB_URL", ""),
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		DeadlineOffsets:                deadlineOffsets,
		DeadlineDefaultOffset:          deadlineDefault,
		RecomputeMaxWorkers:            recomputeMaxWorkers,
		AnubisBaseURL:                  getEnv("ANUBIS_BASE_URL", "http://localhost:8081"),
		AnubisIntrospectURL:            getEnv("ANUBIS_INTROSPECT_PATH", "/v1/auth/introspect"),
		AnubisAdminKey:                 getEnv("ANUBIS_ADMIN_KEY", ""),
		AnubisTimeout:                  anubisTimeout,
		AnubisCircuitEnabled:           anubisCircuitEnabled,
		AnubisCircuitFailureCount:      anubisCircuitFailureCount,
		AnubisCircuitOpenTimeout:       anubisCircuitOpenTimeout,
		AnubisCircuitHalfOpenMaxReq:    anubisCircuitHalfOpenMaxReq,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		ScoreFeedEnabled:               scoreFeedEnabled,
		ScoreFeedBaseURL:               scoreFeedBaseURL,
		ScoreFeedToken:                 scoreFeedToken,
		ScoreFeedTimeout:               scoreFeedTimeout,
		ScoreFeedMaxRetries:            scoreFeedMaxRetries,
		ScoreFeedMaxConcurrentWeeks:    scoreFeedMaxConcurrentWeeks,
		ScoreFeedCircuitEnabled:        scoreFeedCircuitEnabled,
		ScoreFeedCircuitFailureCount:   scoreFeedCircuitFailureCount,
		ScoreFeedCircuitOpenTimeout:    scoreFeedCircuitOpenTimeout,
		ScoreFeedCircuitHalfOpenMaxReq: scoreFeedCircuitHalfOpenMaxReq,
		InternalJobToken:               internalJobToken,
		QStashEnabled:                  qstashEnabled,
		QStashBaseURL:                  qstashBaseURL,
		QStashToken:                    qstashToken,
		QStashTargetBaseURL:            qstashTargetBaseURL,
		QStashRetries:                  qstashRetries,
		QStashCircuitEnabled:           qstashCircuitEnabled,
		QStashCircuitFailureCount:      qstashCircuitFailureCount,
		QStashCircuitOpenTimeout:       qstashCircuitOpenTimeout,
		QStashCircuitHalfOpenMaxReq:    qstashCircuitHalfOpenMaxReq,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
