package core

import (
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage engines
const (
	EngineCSV      = "csv"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// Email backends
const (
	EmailConsole  = "console"
	EmailSendgrid = "sendgrid"
	EmailSMTP     = "smtp"
)

type (
	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string

		Storage   StorageConfig
		Server    ServerConfig
		Email     EmailConfig
		Reminders ReminderConfig
	}

	StorageConfig struct {
		Engine  string
		DataDir string // csv tables & sqlite file

		// postgres
		Host       string
		Port       int
		User       string
		Password   string
		Name       string
		DisableTLS bool
	}

	ServerConfig struct {
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	EmailConfig struct {
		Backend          string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string

		SMTPHost     string
		SMTPPort     int
		SMTPUsername string
		SMTPPassword string
	}

	ReminderConfig struct {
		Cron    string // robfig/cron spec; empty disables the job
		Horizon time.Duration
	}
)

func (sc StorageConfig) Address() string {
	return net.JoinHostPort(sc.Host, strconv.Itoa(sc.Port))
}

func (ec EmailConfig) SMTPAddress() string {
	return net.JoinHostPort(ec.SMTPHost, strconv.Itoa(ec.SMTPPort))
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "TutorRen")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "k2v$8w!ro7c@tutorren^desk#0b1e5p9q")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("storage.engine", EngineCSV)
	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.host", "localhost")
	v.SetDefault("storage.port", 5432)
	v.SetDefault("storage.user", "tutorren")
	v.SetDefault("storage.password", "")
	v.SetDefault("storage.name", "tutorren")
	v.SetDefault("storage.disableTLS", true)

	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 12*time.Hour)

	v.SetDefault("email.backend", EmailConsole)
	v.SetDefault("email.defaultFromEmail", "TutorRen <noreply@localhost>")
	v.SetDefault("email.sendgridApiKey", "")
	v.SetDefault("email.smtpHost", "localhost")
	v.SetDefault("email.smtpPort", 587)
	v.SetDefault("email.smtpUsername", "")
	v.SetDefault("email.smtpPassword", "")

	v.SetDefault("reminders.cron", "")
	v.SetDefault("reminders.horizon", 24*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	from, err := mail.ParseAddress(v.GetString("email.defaultFromEmail"))
	if err != nil {
		log.Fatalf("config.defaultFromEmail: %v", err)
	}

	return &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Storage: StorageConfig{
			Engine:     strings.ToLower(v.GetString("storage.engine")),
			DataDir:    v.GetString("storage.dataDir"),
			Host:       v.GetString("storage.host"),
			Port:       v.GetInt("storage.port"),
			User:       v.GetString("storage.user"),
			Password:   v.GetString("storage.password"),
			Name:       v.GetString("storage.name"),
			DisableTLS: v.GetBool("storage.disableTLS"),
		},
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Email: EmailConfig{
			Backend:          strings.ToLower(v.GetString("email.backend")),
			DefaultFromEmail: *from,
			SendgridAPIKey:   v.GetString("email.sendgridApiKey"),
			SMTPHost:         v.GetString("email.smtpHost"),
			SMTPPort:         v.GetInt("email.smtpPort"),
			SMTPUsername:     v.GetString("email.smtpUsername"),
			SMTPPassword:     v.GetString("email.smtpPassword"),
		},
		Reminders: ReminderConfig{
			Cron:    v.GetString("reminders.cron"),
			Horizon: v.GetDuration("reminders.horizon"),
		},
	}
}

// SubjectPrefix is prepended to every outgoing email subject.
func (c *Config) SubjectPrefix() string {
	return fmt.Sprintf("[%s] ", c.AppName)
}
