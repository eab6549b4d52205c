package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// значения по умолчанию для необязательных ключей
const (
	defaultReservationTTL         = 30 * time.Minute
	defaultReservationSweepBatch  = 500
	defaultFanoutWorkers          = 8
	defaultFanoutQueueSize        = 1024
	defaultFanoutRetryInitial     = 100 * time.Millisecond
	defaultFanoutRetryMax         = 2 * time.Second
	defaultFanoutRetryMaxElapsed  = 10 * time.Second
	defaultFanoutRedriveGrace     = 30 * time.Second
	defaultFanoutRedriveBatch     = 500
	defaultFanoutRetentionPeriod  = 7 * 24 * time.Hour
	defaultFanoutRetentionSched   = "@daily"
	defaultDriverActionTimeout    = 5 * time.Second
	defaultAnnouncementsTopic     = "fulfillment.announcements"
	defaultEventsTopic            = "fulfillment.events"
	defaultDriverActionsTopic     = "fulfillment.driver-actions"
	defaultReservationSweepPeriod = time.Minute
	defaultFanoutRedrivePeriod    = 15 * time.Second
)

type (
	Tasks struct {
		ReservationSweepInterval time.Duration
		FanoutRedriveInterval    time.Duration
		// FanoutRetentionSchedule cron-расписание очистки журнала рассылки
		FanoutRetentionSchedule string
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
		GRPCHealthPort   string
	}

	Storage struct {
		Driver string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Reservation struct {
		DefaultTTL time.Duration
		SweepBatch int
	}

	Delivery struct {
		AllowDirectConfirm bool
	}

	Fanout struct {
		Workers              int
		QueueSize            int
		RetryInitialInterval time.Duration
		RetryMaxInterval     time.Duration
		RetryMaxElapsed      time.Duration
		RedriveGrace         time.Duration
		RedriveBatch         int
		RetentionPeriod      time.Duration
	}

	Kafka struct {
		PortHealthcheck    string
		Brokers            string
		ConsumerGroup      string
		AnnouncementsTopic string
		EventsTopic        string
		DriverActionsTopic string
		Sarama             Sarama
		Handlers           KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DriverActionReceived DriverActionReceived
	}

	DriverActionReceived struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks       Tasks
		Server      HTTPServer
		Storage     Storage
		Database    Database
		Reservation Reservation
		Delivery    Delivery
		Fanout      Fanout
		Kafka       Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// HasKafka без брокеров анонсы пишутся только в лог.
func (k Kafka) HasKafka() bool {
	return k.Brokers != ""
}

// BrokerList адреса брокеров из KAFKA_BROKERS через запятую.
func (k Kafka) BrokerList() []string {
	res := make([]string, 0, 2)
	for _, broker := range strings.Split(k.Brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			res = append(res, broker)
		}
	}
	return res
}

// ValidateConsumer проверяет ключи, обязательные для воркера действий водителя.
func (k Kafka) ValidateConsumer() error {
	if k.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if k.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if k.Handlers.DriverActionReceived.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_DRIVER_ACTION_PROCESS_TIMEOUT must be positive")
	}
	return nil
}

func loadFromEnv() (*Config, error) {
	var errList []error
	durations := func(key string, def time.Duration) time.Duration {
		v, err := osGetEnvDuration(key, def)
		errList = append(errList, err)
		return v
	}
	ints := func(key string, def int) int {
		v, err := osGetInt(key, def)
		errList = append(errList, err)
		return v
	}
	bools := func(key string) bool {
		v, err := osGetBool(key)
		errList = append(errList, err)
		return v
	}

	cfg := &Config{
		Tasks: Tasks{
			ReservationSweepInterval: durations("BACKGROUND_RESERVATION_SWEEP_INTERVAL", defaultReservationSweepPeriod),
			FanoutRedriveInterval:    durations("BACKGROUND_FANOUT_REDRIVE_INTERVAL", defaultFanoutRedrivePeriod),
			FanoutRetentionSchedule:  osGetString("FANOUT_RETENTION_SCHEDULE", defaultFanoutRetentionSched),
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   durations("MIDDLEWARE_REQUEST_TIMEOUT", 0),
			RateLimiterQPS:   ints("MIDDLEWARE_RATE_LIMIT_QPS", 0),
			RateLimiterBurst: ints("MIDDLEWARE_RATE_LIMIT_BURST", 0),
			PprofEnabled:     bools("PPROF_ENABLED"),
			PprofPort:        os.Getenv("PPROF_PORT"),
			GRPCHealthPort:   os.Getenv("GRPC_HEALTH_PORT"),
		},
		Storage: Storage{
			Driver: osGetString("STORAGE_DRIVER", StoragePostgres),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Reservation: Reservation{
			DefaultTTL: durations("RESERVATION_TTL", defaultReservationTTL),
			SweepBatch: ints("RESERVATION_SWEEP_BATCH", defaultReservationSweepBatch),
		},
		Delivery: Delivery{
			AllowDirectConfirm: bools("DELIVERY_ALLOW_DIRECT_CONFIRM"),
		},
		Fanout: Fanout{
			Workers:              ints("FANOUT_WORKERS", defaultFanoutWorkers),
			QueueSize:            ints("FANOUT_QUEUE_SIZE", defaultFanoutQueueSize),
			RetryInitialInterval: durations("FANOUT_RETRY_INITIAL_INTERVAL", defaultFanoutRetryInitial),
			RetryMaxInterval:     durations("FANOUT_RETRY_MAX_INTERVAL", defaultFanoutRetryMax),
			RetryMaxElapsed:      durations("FANOUT_RETRY_MAX_ELAPSED", defaultFanoutRetryMaxElapsed),
			RedriveGrace:         durations("FANOUT_REDRIVE_GRACE", defaultFanoutRedriveGrace),
			RedriveBatch:         ints("FANOUT_REDRIVE_BATCH", defaultFanoutRedriveBatch),
			RetentionPeriod:      durations("FANOUT_RETENTION_PERIOD", defaultFanoutRetentionPeriod),
		},
		Kafka: Kafka{
			Brokers:            os.Getenv("KAFKA_BROKERS"),
			ConsumerGroup:      os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck:    os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			AnnouncementsTopic: osGetString("KAFKA_ANNOUNCEMENTS_TOPIC", defaultAnnouncementsTopic),
			EventsTopic:        osGetString("KAFKA_EVENTS_TOPIC", defaultEventsTopic),
			DriverActionsTopic: osGetString("KAFKA_DRIVER_ACTIONS_TOPIC", defaultDriverActionsTopic),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: bools("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT"),
			},
			Handlers: KafkaHandlers{
				DriverActionReceived: DriverActionReceived{
					ProcessTimeout: durations("KAFKA_HANDLER_DRIVER_ACTION_PROCESS_TIMEOUT", defaultDriverActionTimeout),
				},
			},
		},
	}

	if err := errors.Join(errList...); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if err := validateDatabase(cfg.Database); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.Storage.Driver)
	}

	if cfg.Reservation.DefaultTTL <= 0 {
		return errors.New("RESERVATION_TTL must be positive")
	}
	if cfg.Reservation.SweepBatch < 0 {
		return errors.New("RESERVATION_SWEEP_BATCH must not be negative")
	}

	if cfg.Tasks.ReservationSweepInterval <= 0 {
		return errors.New("BACKGROUND_RESERVATION_SWEEP_INTERVAL must be positive")
	}
	if cfg.Tasks.FanoutRedriveInterval <= 0 {
		return errors.New("BACKGROUND_FANOUT_REDRIVE_INTERVAL must be positive")
	}
	if cfg.Tasks.FanoutRetentionSchedule == "" {
		return errors.New("FANOUT_RETENTION_SCHEDULE is required")
	}

	if cfg.Fanout.Workers <= 0 {
		return errors.New("FANOUT_WORKERS must be positive")
	}
	if cfg.Fanout.QueueSize < 0 {
		return errors.New("FANOUT_QUEUE_SIZE must not be negative")
	}
	if cfg.Fanout.RetryInitialInterval <= 0 || cfg.Fanout.RetryMaxInterval < cfg.Fanout.RetryInitialInterval {
		return errors.New("FANOUT_RETRY_INITIAL_INTERVAL must be positive and not exceed FANOUT_RETRY_MAX_INTERVAL")
	}
	if cfg.Fanout.RetryMaxElapsed <= 0 {
		return errors.New("FANOUT_RETRY_MAX_ELAPSED must be positive")
	}
	// захват канала живет RedriveGrace, ретраи публикации должны уложиться в него
	if cfg.Fanout.RetryMaxElapsed >= cfg.Fanout.RedriveGrace {
		return errors.New("FANOUT_RETRY_MAX_ELAPSED must be shorter than FANOUT_REDRIVE_GRACE")
	}
	if cfg.Fanout.RetentionPeriod <= 0 {
		return errors.New("FANOUT_RETENTION_PERIOD must be positive")
	}

	if cfg.Kafka.HasKafka() && cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

func validateDatabase(db Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func osGetString(s, def string) string {
	val := os.Getenv(s)
	if val == "" {
		return def
	}
	return val
}

func osGetInt(s string, def int) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
