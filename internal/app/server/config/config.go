package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DefaultRunAddress      = ":8080"
	DefaultEntityTypesFile = "config/entity_types.yaml"
	DefaultShortDateFormat = "01/02/2006 - 15:04"
	DefaultTimezone        = "UTC"
)

type Config struct {
	Env         string
	DB          DB
	Server      Server
	Logger      Logger
	EntityTypes EntityTypes
	Date        Date
	Access      Access
}

type defaultConfig struct {
	RunAddress      string
	BaseURL         string
	DatabaseURI     string
	LogLevel        string
	Env             string
	Migrations      string
	EntityTypesFile string
	ShortDateFormat string
	Timezone        string
	Superusers      []int
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
	// BaseURL prefixes generated revision links. Empty keeps them relative.
	BaseURL string `env:"BASE_URL"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type EntityTypes struct {
	File string `env:"ENTITY_TYPES_FILE"`
}

type Date struct {
	ShortFormat string `env:"DATE_SHORT_FORMAT"`
	Timezone    string `env:"DATE_TIMEZONE"`
}

// Access lists account ids that bypass permission checks.
type Access struct {
	Superusers []int `env:"SUPERUSERS"`
}

// EntityType is one entry of the entity types file.
type EntityType struct {
	ID          string            `mapstructure:"id"`
	Label       string            `mapstructure:"label"`
	Bundles     []string          `mapstructure:"bundles"`
	Ownership   bool              `mapstructure:"ownership"`
	RevisionLog bool              `mapstructure:"revision_log"`
	Links       map[string]string `mapstructure:"links"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", DefaultRunAddress)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("entity_types_file", DefaultEntityTypesFile)
	viper.SetDefault("date_short_format", DefaultShortDateFormat)
	viper.SetDefault("date_timezone", DefaultTimezone)

	d := defaultConfig{
		RunAddress:      viper.GetString("run_address"),
		BaseURL:         viper.GetString("base_url"),
		DatabaseURI:     viper.GetString("database_uri"),
		LogLevel:        viper.GetString("log_level"),
		Env:             viper.GetString("app_env"),
		Migrations:      viper.GetString("migrations_path"),
		EntityTypesFile: viper.GetString("entity_types_file"),
		ShortDateFormat: viper.GetString("date_short_format"),
		Timezone:        viper.GetString("date_timezone"),
		Superusers:      parseIDs(viper.GetString("superusers")),
	}

	config := Config{
		Env: d.Env,
		DB: DB{
			DatabaseURI: d.DatabaseURI,
			Migrations:  d.Migrations,
		},
		Server:      Server{RunAddress: d.RunAddress, BaseURL: d.BaseURL},
		Logger:      Logger{LogLevel: d.LogLevel},
		EntityTypes: EntityTypes{File: d.EntityTypesFile},
		Date: Date{
			ShortFormat: d.ShortDateFormat,
			Timezone:    d.Timezone,
		},
		Access: Access{Superusers: d.Superusers},
	}

	return &config
}

// LoadEntityTypes reads the entity_types list from a YAML (or any viper
// supported) file.
func LoadEntityTypes(path string) ([]EntityType, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read entity types %s: %w", path, err)
	}

	var types []EntityType
	if err := v.UnmarshalKey("entity_types", &types); err != nil {
		return nil, fmt.Errorf("decode entity types: %w", err)
	}

	for i := range types {
		types[i].ID = strings.TrimSpace(types[i].ID)
	}

	return types, nil
}

// parseIDs reads a comma separated id list, skipping entries that are not integers.
func parseIDs(s string) []int {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
