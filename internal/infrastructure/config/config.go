package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig
	Log      LogConfig
	AWS      AWSConfig
	Tables   TablesConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Payments PaymentsConfig
}

type HTTPConfig struct {
	Port           string
	MaxUploadBytes int64
}

type LogConfig struct {
	Level  string
	Format string
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
	S3Endpoint       string
}

type TablesConfig struct {
	Checkouts        string
	DeletedCheckouts string
	Registrations    string
	Vouchers         string
	Events           string
}

type StorageConfig struct {
	AttachmentsBucket string
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	AdminUIDs []string
}

// IsAdminUID reports whether uid is listed in ADMIN_UIDS.
func (a AuthConfig) IsAdminUID(uid string) bool {
	for _, id := range a.AdminUIDs {
		if id == uid {
			return true
		}
	}
	return false
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	EventTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string
	GatewayMock            bool
	Sandbox                bool
	SandboxPayerEmail      string
	SandboxPayerUserID     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("CHECKOUTS_TABLE", "checkouts")
	v.SetDefault("DELETED_CHECKOUTS_TABLE", "checkouts_deleted")
	v.SetDefault("REGISTRATIONS_TABLE", "registrations")
	v.SetDefault("VOUCHERS_TABLE", "vouchers")
	v.SetDefault("EVENTS_TABLE", "events")
	v.SetDefault("ATTACHMENTS_BUCKET", "checkout-attachments")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EVENT_CACHE_TTL", 5*time.Minute)
	v.SetDefault("KAFKA_TOPIC", "inscricoes.events")
	v.SetDefault("PAYMENT_GATEWAY_MOCK", false)
	v.SetDefault("MP_SANDBOX", false)
}

// Load reads the process environment, optionally overlaid by
// ./config/config.yaml, into a Config.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTP: HTTPConfig{
			Port:           v.GetString("HTTP_PORT"),
			MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		AWS: AWSConfig{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
			S3Endpoint:       v.GetString("S3_ENDPOINT"),
		},
		Tables: TablesConfig{
			Checkouts:        v.GetString("CHECKOUTS_TABLE"),
			DeletedCheckouts: v.GetString("DELETED_CHECKOUTS_TABLE"),
			Registrations:    v.GetString("REGISTRATIONS_TABLE"),
			Vouchers:         v.GetString("VOUCHERS_TABLE"),
			Events:           v.GetString("EVENTS_TABLE"),
		},
		Storage: StorageConfig{
			AttachmentsBucket: v.GetString("ATTACHMENTS_BUCKET"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			JWTIssuer: v.GetString("JWT_ISSUER"),
			AdminUIDs: splitList(v.GetString("ADMIN_UIDS")),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			EventTTL: v.GetDuration("EVENT_CACHE_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Payments: PaymentsConfig{
			MercadoPagoAccessToken: v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
			GatewayMock:            v.GetBool("PAYMENT_GATEWAY_MOCK"),
			Sandbox:                v.GetBool("MP_SANDBOX"),
			SandboxPayerEmail:      v.GetString("MP_SANDBOX_PAYER_EMAIL"),
			SandboxPayerUserID:     v.GetString("MP_SANDBOX_PAYER_USER_ID"),
		},
	}
}

// splitList parses comma separated values, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
