// Package config loads and validates the settings shared by the journal API and
// the statistics processor.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Outbox      OutboxConfig
	WorkerPool  WorkerPoolConfig
	Uploads     UploadsConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// IsProduction reports whether the service runs with production settings
func (a ApplicationConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// KafkaConfig contains Kafka configuration
type KafkaConfig struct {
	Brokers            string
	JournalEventsTopic string
	NumPartitions      int
	ReplicationFactor  int
	ConsumerGroup      string
	MinBytes           int
	MaxBytes           int
	MaxWait            time.Duration
	StartOffset        int64
	DLQTopic           string
}

// BrokerList splits the comma separated broker setting
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI                string
	Database           string
	SnapshotCollection string
	Timeout            time.Duration
	MaxPoolSize        uint64
	MinPoolSize        uint64
	MaxConnIdleTime    time.Duration
}

// OutboxConfig controls the journal event relay
type OutboxConfig struct {
	PollingInterval  time.Duration
	BatchSize        int
	MaxRetryAttempts int
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int
}

// UploadsConfig controls where attachment images are stored
type UploadsConfig struct {
	Dir         string
	MaxFileSize int64 // bytes
}

func (c *Config) validate() error {
	var validationErrors []string
	positive := func(ok bool, key string) {
		if !ok {
			validationErrors = append(validationErrors, key+" must be greater than 0")
		}
	}
	required := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			validationErrors = append(validationErrors, key+" is required")
		}
	}

	positive(c.Server.Port > 0, "SERVER_PORT")
	positive(c.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT")
	positive(c.Server.ReadTimeout > 0, "SERVER_READ_TIMEOUT")
	positive(c.Server.WriteTimeout > 0, "SERVER_WRITE_TIMEOUT")
	positive(c.Server.IdleTimeout > 0, "SERVER_IDLE_TIMEOUT")

	if len(c.Kafka.BrokerList()) == 0 {
		validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
	}
	required(c.Kafka.JournalEventsTopic, "KAFKA_JOURNAL_EVENTS_TOPIC")
	required(c.Kafka.ConsumerGroup, "KAFKA_CONSUMER_GROUP")
	required(c.Kafka.DLQTopic, "KAFKA_DLQ_TOPIC")
	positive(c.Kafka.MinBytes > 0, "KAFKA_CONSUMER_MIN_BYTES")
	positive(c.Kafka.MaxBytes > 0, "KAFKA_CONSUMER_MAX_BYTES")
	positive(c.Kafka.MaxWait > 0, "KAFKA_CONSUMER_MAX_WAIT")
	if c.Kafka.DLQTopic != "" && c.Kafka.DLQTopic == c.Kafka.JournalEventsTopic {
		validationErrors = append(validationErrors, "KAFKA_DLQ_TOPIC must differ from KAFKA_JOURNAL_EVENTS_TOPIC")
	}

	required(c.Postgres.URL, "POSTGRES_URL")
	positive(c.Postgres.MaxConns > 0, "POSTGRES_MAX_CONNS")
	positive(c.Postgres.MinConns > 0, "POSTGRES_MIN_CONNS")
	positive(c.Postgres.ConnMaxLifetime > 0, "POSTGRES_MAX_CONN_LIFETIME")
	positive(c.Postgres.ConnMaxIdleTime > 0, "POSTGRES_MAX_CONN_IDLE_TIME")

	required(c.MongoDB.URI, "MONGO_URI")
	required(c.MongoDB.Database, "MONGO_DATABASE")
	required(c.MongoDB.SnapshotCollection, "MONGO_SNAPSHOT_COLLECTION")
	positive(c.MongoDB.Timeout > 0, "MONGO_TIMEOUT")
	positive(c.MongoDB.MaxPoolSize > 0, "MONGO_MAX_POOL_SIZE")
	positive(c.MongoDB.MinPoolSize > 0, "MONGO_MIN_POOL_SIZE")
	positive(c.MongoDB.MaxConnIdleTime > 0, "MONGO_MAX_CONN_IDLE_TIME")

	positive(c.Outbox.PollingInterval > 0, "OUTBOX_POLLING_INTERVAL")
	positive(c.Outbox.BatchSize > 0, "OUTBOX_BATCH_SIZE")
	positive(c.Outbox.MaxRetryAttempts > 0, "OUTBOX_MAX_RETRY_ATTEMPTS")

	positive(c.WorkerPool.Size > 0, "WORKER_POOL_SIZE")

	required(c.Uploads.Dir, "UPLOADS_DIR")
	positive(c.Uploads.MaxFileSize > 0, "UPLOADS_MAX_FILE_SIZE")

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}
	return nil
}
