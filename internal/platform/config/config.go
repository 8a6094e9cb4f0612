package config

import (
	"os"
	"strconv"
	"time"

	liststrings "warden/pkg/platform/strings"
)

// Moderation tunables. These are fixed per deployment of the bot.
const (
	DefaultCommandPrefix   = "$"
	DefaultMemberRole      = "Guildsman"
	DefaultOnsiteRole      = "Onsite Attendee"
	DefaultOptInRole       = "Updates"
	DefaultStaffRole       = "Staff"
	DefaultStatusChannel   = "bot-messages"
	DefaultRulesChannel    = "rules"
	DefaultMaxChunkLength  = 2000
	DefaultBulkLockTTL     = 15 * time.Minute
	DefaultHandlerTimeout  = 30 * time.Second
	DefaultFetchTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Bot holds the moderation tunables handed to every component constructor.
type Bot struct {
	Token            string
	CommandPrefix    string
	MemberRole       string
	OnsiteRole       string
	OptInRole        string
	StaffRoles       []string
	StatusChannel    string
	RulesChannel     string
	RulesDocumentURL string
	MaxChunkLength   int
	// BulkLockTTL bounds a crashed holder; a live operation keeps renewing it.
	BulkLockTTL      time.Duration
	// HandlerTimeout bounds gateway event handlers. Bulk operations are exempt.
	HandlerTimeout   time.Duration
	FetchTimeout     time.Duration
}

// Server captures the operator HTTP surface configuration.
type Server struct {
	Addr            string
	AdminToken      string
	ShutdownTimeout time.Duration
}

// RedisConfig configures the optional Redis client used for the shared bulk lock.
// An empty URL disables Redis and the bot falls back to an in-process lock.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuditConfig selects where audit events go. No brokers means in-memory only.
type AuditConfig struct {
	KafkaBrokers []string
	Topic        string
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Config is the full process configuration.
type Config struct {
	Bot    Bot
	Server Server
	Redis  RedisConfig
	Audit  AuditConfig
	Log    LogConfig
}

// DefaultBot returns the compiled-in moderation settings with no token.
func DefaultBot() Bot {
	return Bot{
		CommandPrefix:  DefaultCommandPrefix,
		MemberRole:     DefaultMemberRole,
		OnsiteRole:     DefaultOnsiteRole,
		OptInRole:      DefaultOptInRole,
		StaffRoles:     []string{DefaultStaffRole},
		StatusChannel:  DefaultStatusChannel,
		RulesChannel:   DefaultRulesChannel,
		MaxChunkLength: DefaultMaxChunkLength,
		BulkLockTTL:    DefaultBulkLockTTL,
		HandlerTimeout: DefaultHandlerTimeout,
		FetchTimeout:   DefaultFetchTimeout,
	}
}

// IsStaff reports whether any of the member's role names is a staff role.
func (b Bot) IsStaff(roleNames []string) bool {
	for _, name := range roleNames {
		for _, staff := range b.StaffRoles {
			if name == staff {
				return true
			}
		}
	}
	return false
}

// FromEnv builds a Config from environment variables so main stays lean.
// Only secrets and infrastructure endpoints come from the environment.
func FromEnv() Config {
	bot := DefaultBot()
	bot.Token = os.Getenv("DISCORD_TOKEN")
	bot.RulesDocumentURL = os.Getenv("RULES_DOCUMENT_URL")
	if staff := liststrings.SplitList(os.Getenv("WARDEN_STAFF_ROLES"), ","); len(staff) > 0 {
		bot.StaffRoles = staff
	}

	addr := os.Getenv("WARDEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "warden.audit"
	}

	return Config{
		Bot: bot,
		Server: Server{
			Addr:            addr,
			AdminToken:      os.Getenv("WARDEN_ADMIN_TOKEN"),
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Audit: AuditConfig{
			KafkaBrokers: liststrings.SplitList(os.Getenv("KAFKA_BROKERS"), ","),
			Topic:        topic,
		},
		Log: LogConfig{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
