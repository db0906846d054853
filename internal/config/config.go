package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`

	// Fixtures overrides the embedded seed data; empty uses the defaults.
	Fixtures string `yaml:"fixtures"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type AuthConfig struct {
	NoAuth            bool     `yaml:"no_auth"`
	FirebaseProjectID string   `yaml:"firebase_project_id"`
	CredentialsFile   string   `yaml:"credentials_file"`
	CredentialsJSON   string   `yaml:"-"` // env only
	Admins            []string `yaml:"admins"`
}

type PlaybackConfig struct {
	Tick time.Duration `yaml:"tick"`
	Step int           `yaml:"step"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8088",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Playback: PlaybackConfig{Tick: 500 * time.Millisecond, Step: 5},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads .env (if present), then the YAML file at path (if any), then
// applies environment overrides.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if os.Getenv("NO_AUTH") == "1" {
		c.Auth.NoAuth = true
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		c.Auth.FirebaseProjectID = v
	}
	if v := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); v != "" {
		c.Auth.CredentialsJSON = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Auth.CredentialsFile = v
	}
	if v := os.Getenv("ADMIN_IDS"); v != "" {
		c.Auth.Admins = nil
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Auth.Admins = append(c.Auth.Admins, id)
			}
		}
	}
	if v := os.Getenv("FIXTURES_FILE"); v != "" {
		c.Fixtures = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c Config) validate() error {
	if c.Playback.Tick <= 0 {
		return fmt.Errorf("playback.tick must be positive, got %s", c.Playback.Tick)
	}
	if c.Playback.Step <= 0 || c.Playback.Step > 100 {
		return fmt.Errorf("playback.step must be in 1..100, got %d", c.Playback.Step)
	}
	if !c.Auth.NoAuth && c.Auth.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID not set (or use NO_AUTH=1)")
	}
	return nil
}

func (c Config) IsAdmin(uid string) bool {
	if uid == "" {
		return false
	}
	for _, id := range c.Auth.Admins {
		if id == uid {
			return true
		}
	}
	return false
}

// NewAuthClient builds the Firebase Auth client. It returns nil in NO_AUTH
// mode.
func NewAuthClient(ctx context.Context, a AuthConfig) (*auth.Client, error) {
	if a.NoAuth {
		return nil, nil
	}

	var opts []option.ClientOption
	switch {
	case a.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(a.CredentialsJSON)))
	case a.CredentialsFile != "":
		if _, err := os.Stat(a.CredentialsFile); err != nil {
			return nil, fmt.Errorf("credentials file %q not readable: %w", a.CredentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(a.CredentialsFile))
	case os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") == "":
		return nil, errors.New("missing Firebase credentials: set FIREBASE_SERVICE_ACCOUNT_JSON or GOOGLE_APPLICATION_CREDENTIALS, or use FIREBASE_AUTH_EMULATOR_HOST / NO_AUTH=1")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: a.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return client, nil
}
