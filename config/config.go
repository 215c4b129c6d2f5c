// Initializing common application configuration
package config

import (
	"os"
	"time"

	"github.com/sakurairo-fans/anime-img-api/internal/entity"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Buckets  BucketsConfig  `mapstructure:"buckets"`
	Proxy    ProxyConfig    `mapstructure:"proxy"`
}

type ServerConfig struct {
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	Mode        string        `mapstructure:"mode"`
	Debug       bool          `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// BucketsConfig is the static weight table: table names and row counts of
// the general and restricted bucket sets. Table names only ever come from
// here, never from a request.
type BucketsConfig struct {
	General    []entity.Bucket `mapstructure:"general"`
	Restricted []entity.Bucket `mapstructure:"restricted"`
}

type ProxyConfig struct {
	RawHost       string `mapstructure:"raw_host"`
	DefaultMirror string `mapstructure:"default_mirror"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}

	// credentials come from the environment in deployment
	c.Database.Password = GetEnv("DATABASE_PASSWORD", c.Database.Password)
	c.Mongo.URI = GetEnv("MONGO_URI", c.Mongo.URI)

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.debug", false)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "anime_img")
	v.SetDefault("database.dbname", "anime_img")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Mongo defaults
	v.SetDefault("mongo.database", "pixiv")
	v.SetDefault("mongo.collection", "pixiv01")

	// Proxy defaults
	v.SetDefault("proxy.raw_host", "i.pximg.net")
	v.SetDefault("proxy.default_mirror", "i.pixiv.re")
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
