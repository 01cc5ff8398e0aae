package config

import (
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	DBEngine    string `env:"DB_ENGINE" envDefault:"sqlite"`
	Dsn         string `env:"DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./database.db"`
	MetadataURL string `env:"METADATA_URL" envDefault:"https://d3d4yli4hf5bmh.cloudfront.net/metadatav2.json"`
	StreamURL   string `env:"STREAM_URL" envDefault:"https://d3d4yli4hf5bmh.cloudfront.net/hls/live.m3u8"`
	AlbumArtURL string `env:"ALBUM_ART_URL" envDefault:"https://d3d4yli4hf5bmh.cloudfront.net/cover.jpg"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"./public"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}
