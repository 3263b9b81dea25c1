package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Addr             string
	StoreDriver      string
	KafkaBroker      string
	InventoryTopic   string
	CostsTopic       string
	RedisHost        string
	RedisPort        string
	RedisTTL         time.Duration
	FeedPollInterval time.Duration
	EngineQueueSize  int
	Scopes           []string
	ScopesFile       string
	AutoRepair       bool
}

// LoadSettings reads the environment, seeding it from a .env file when one
// exists. Malformed numbers and durations fall back to their defaults.
func LoadSettings() Settings {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	return Settings{
		Addr:             GetEnv("SYNC_SVC_ADDR", ":8084"),
		StoreDriver:      GetEnv("STORE_DRIVER", "postgres"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		InventoryTopic:   GetEnv("INVENTORY_TOPIC", "inventory-changes"),
		CostsTopic:       GetEnv("COSTS_TOPIC", "menu-costs"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        GetEnv("REDIS_PORT", "6379"),
		RedisTTL:         GetDuration("REDIS_TTL", 24*time.Hour),
		FeedPollInterval: GetDuration("FEED_POLL_INTERVAL", 30*time.Second),
		EngineQueueSize:  GetInt("ENGINE_QUEUE_SIZE", 16),
		Scopes:           splitList(os.Getenv("SYNC_SCOPES")),
		ScopesFile:       os.Getenv("SYNC_SCOPES_FILE"),
		AutoRepair:       GetBool("AUTO_REPAIR", false),
	}
}

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func GetBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

// ScopeRef is one tenant/location pair as written in a scopes file.
type ScopeRef struct {
	TenantID   string `yaml:"tenantId"`
	LocationID string `yaml:"locationId"`
}

type scopesFile struct {
	Scopes []ScopeRef `yaml:"scopes"`
}

// LoadScopes merges the SYNC_SCOPES list with the scopes file, dropping
// duplicates and keeping first-seen order.
func (s Settings) LoadScopes() ([]ScopeRef, error) {
	var refs []ScopeRef
	for _, raw := range s.Scopes {
		tenant, location, ok := strings.Cut(raw, "/")
		if !ok || tenant == "" || location == "" {
			return nil, fmt.Errorf("invalid scope %q, want tenant/location", raw)
		}
		refs = append(refs, ScopeRef{TenantID: tenant, LocationID: location})
	}

	if s.ScopesFile != "" {
		data, err := os.ReadFile(s.ScopesFile)
		if err != nil {
			return nil, fmt.Errorf("read scopes file: %w", err)
		}
		fromFile, err := ParseScopesFile(data)
		if err != nil {
			return nil, err
		}
		refs = append(refs, fromFile...)
	}

	seen := make(map[ScopeRef]struct{}, len(refs))
	unique := refs[:0]
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		unique = append(unique, ref)
	}
	return unique, nil
}

func ParseScopesFile(data []byte) ([]ScopeRef, error) {
	var file scopesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scopes file: %w", err)
	}
	for i, ref := range file.Scopes {
		if ref.TenantID == "" || ref.LocationID == "" {
			return nil, fmt.Errorf("scopes file entry %d: tenantId and locationId are required", i)
		}
	}
	return file.Scopes, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func (s Settings) MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.RedisHost + ":" + s.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func (s Settings) NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{s.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func (s Settings) NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(s.KafkaBroker),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}
