package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional JSON config file looked up in the config dir.
const FileName = "sciencekit.cfg.json"

// EnvPrefix prefixes every environment override, e.g. SCIENCEKIT_LOGLEVEL.
const EnvPrefix = "SCIENCEKIT"

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PostgresConfig holds Postgres connection settings
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig selects and configures the run-record backend
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"`
	Memory   MemoryConfig   `json:"memory" mapstructure:"memory"`
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"-" mapstructure:"-"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// InfluxConfig holds InfluxDB settings
type InfluxConfig struct {
	Enabled    bool
	Protocol   string
	Host       string
	Port       string
	Token      string
	Org        string
	BackupPath string
}

// LoggingConfig holds log sink settings
type LoggingConfig struct {
	Level          string
	Dir            string
	Console        bool
	GraylogEnabled bool
	GraylogAddress string
}

// TurbineConfig holds wind turbine constants
type TurbineConfig struct {
	AirDensity float64
}

// PlantingConfig holds planting schedule constants
type PlantingConfig struct {
	FrostMonth        int
	FrostDay          int
	HarvestBufferDays int
}

// GameConfig holds climate game settings
type GameConfig struct {
	Seed       uint64
	DeckFile   string
	StartScore int
}

// SetDefaults registers every default value.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")
	viper.SetDefault("logConsole", false)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("storage.type", "none")
	viper.SetDefault("storage.memory.outputDir", "./runs")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./sciencekit.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "sciencekit")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "sciencekit")
	viper.SetDefault("influx.backupPath", "./sciencekit_metrics.lp.gz")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "sciencekit")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("turbine.airDensity", 1.2)

	viper.SetDefault("planting.frostMonth", 10)
	viper.SetDefault("planting.frostDay", 1)
	viper.SetDefault("planting.harvestBufferDays", 14)

	viper.SetDefault("game.seed", 0)
	viper.SetDefault("game.deckFile", "")
	viper.SetDefault("game.startScore", 20)
}

// Load sets default values, loads a .env file if present, binds SCIENCEKIT_*
// environment variables and reads the JSON config file from configDir.
// A missing config file is not an error; a malformed one is.
func Load(configDir string) error {
	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(filepath.Join(configDir, FileName))
	viper.SetConfigType("json")

	if _, err := os.Stat(filepath.Join(configDir, FileName)); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Dir returns the directory to load configuration from: SCIENCEKIT_CONFIG_DIR
// if set, otherwise the working directory.
func Dir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "."
}

// GetStorageConfig returns the storage backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: strings.ToLower(viper.GetString("storage.type")),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the InfluxDB configuration.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Protocol:   viper.GetString("influx.protocol"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetLoggingConfig returns the logging configuration.
func GetLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:          viper.GetString("logLevel"),
		Dir:            viper.GetString("logsDir"),
		Console:        viper.GetBool("logConsole"),
		GraylogEnabled: viper.GetBool("graylog.enabled"),
		GraylogAddress: viper.GetString("graylog.address"),
	}
}

// GetTurbineConfig returns the turbine constants.
func GetTurbineConfig() TurbineConfig {
	return TurbineConfig{
		AirDensity: viper.GetFloat64("turbine.airDensity"),
	}
}

// GetPlantingConfig returns the planting schedule constants.
func GetPlantingConfig() PlantingConfig {
	return PlantingConfig{
		FrostMonth:        viper.GetInt("planting.frostMonth"),
		FrostDay:          viper.GetInt("planting.frostDay"),
		HarvestBufferDays: viper.GetInt("planting.harvestBufferDays"),
	}
}

// GetGameConfig returns the climate game settings.
func GetGameConfig() GameConfig {
	return GameConfig{
		Seed:       viper.GetUint64("game.seed"),
		DeckFile:   viper.GetString("game.deckFile"),
		StartScore: viper.GetInt("game.startScore"),
	}
}

// DefaultTurbineConfig is the turbine configuration without overrides.
func DefaultTurbineConfig() TurbineConfig {
	return TurbineConfig{AirDensity: 1.2}
}

// DefaultPlantingConfig is the planting configuration without overrides.
func DefaultPlantingConfig() PlantingConfig {
	return PlantingConfig{FrostMonth: 10, FrostDay: 1, HarvestBufferDays: 14}
}

// DefaultGameConfig is the game configuration without overrides.
func DefaultGameConfig() GameConfig {
	return GameConfig{StartScore: 20}
}
