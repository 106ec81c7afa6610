package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"privatecheck"`

	// Redis 配置（设置存储、任务相位、幂等标记都依赖它）
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"pcheck"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// 密钥文件存储路径（仅存放发件邮箱凭证）
	SecretStorePath string `env:"SECRET_STORE_PATH" envDefault:"secrets.json"`

	// SMTP 发送配置
	// 发件人地址、收件联系人和 SMTP 主机保存在设置存储里（用户可改），
	// 这里只有端口和兜底主机
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPDefaultHost string `env:"SMTP_DEFAULT_HOST" envDefault:"smtp.qq.com"`

	// 提醒通知推送配置（Pushover）
	PushoverAPIURL string `env:"PUSHOVER_API_URL" envDefault:"https://api.pushover.net/1/messages.json"`
	PushoverToken  string `env:"PUSHOVER_TOKEN"`
	PushoverUser   string `env:"PUSHOVER_USER"`

	// 调度配置
	ReminderHour      int `env:"REMINDER_HOUR" envDefault:"21"` // 每日提醒的本地整点
	ReminderMinute    int `env:"REMINDER_MINUTE" envDefault:"0"`
	PenaltyMaxRetries int `env:"PENALTY_MAX_RETRIES" envDefault:"3"` // 邮件全部失败后的重试上限

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.ReminderHour < 0 || Cfg.ReminderHour > 23 {
		log.Fatal("REMINDER_HOUR must be in [0, 23]")
	}
	if Cfg.ReminderMinute < 0 || Cfg.ReminderMinute > 59 {
		log.Fatal("REMINDER_MINUTE must be in [0, 59]")
	}

	if Cfg.PushoverToken == "" || Cfg.PushoverUser == "" {
		log.Printf("WARN: PUSHOVER_TOKEN/PUSHOVER_USER not set, reminder notifications will only be logged")
	}
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
