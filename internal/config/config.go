package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogFilePath          string
	ServerPort           string
	DBPath               string
	JWTSecret            string
	JWTExpirationMinutes int
	RequestTimeout       time.Duration
}

var AppConfig *Config

// InitConfig загружает .env (если он есть) и заполняет AppConfig из переменных окружения
func InitConfig(configPath string) {
	AppConfig = &Config{}

	if _, err := os.Stat(configPath); err == nil {
		err := godotenv.Load(configPath)
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	AppConfig.LogFilePath = os.Getenv("LOG_FILE_PATH")
	AppConfig.JWTSecret = os.Getenv("JWT_SECRET")

	if os.Getenv("SERVER_PORT") != "" {
		value := os.Getenv("SERVER_PORT")
		if _, err := ParseServerPort(value); err != nil {
			log.Fatalf("SERVER_PORT %q: %v", value, err)
		}
		AppConfig.ServerPort = value
	} else {
		log.Println("SERVER_PORT not set. Auto set to 8080")
		AppConfig.ServerPort = "8080"
	}

	if os.Getenv("DB_PATH") != "" {
		AppConfig.DBPath = os.Getenv("DB_PATH")
	} else {
		log.Println("DB_PATH not set. Auto set to data/calculator.db")
		AppConfig.DBPath = "data/calculator.db"
	}

	if os.Getenv("JWT_EXPIRATION_MINUTES") != "" {
		value, err := strconv.Atoi(os.Getenv("JWT_EXPIRATION_MINUTES"))
		if err != nil {
			log.Fatal("JWT_EXPIRATION_MINUTES not a number")
		}
		AppConfig.JWTExpirationMinutes = value
	} else {
		log.Println("JWT_EXPIRATION_MINUTES not set. Auto set to 60")
		AppConfig.JWTExpirationMinutes = 60
	}

	if os.Getenv("REQUEST_TIMEOUT_MS") != "" {
		value, err := strconv.Atoi(os.Getenv("REQUEST_TIMEOUT_MS"))
		if err != nil {
			log.Fatal("REQUEST_TIMEOUT_MS not a number")
		}
		AppConfig.RequestTimeout = time.Duration(value) * time.Millisecond
	} else {
		log.Println("REQUEST_TIMEOUT_MS not set. Auto set to 5000ms")
		AppConfig.RequestTimeout = 5000 * time.Millisecond
	}
}

// Порт HTTP сервера должен оставлять место для gRPC порта (HTTP + 1)
const maxServerPort = 65534

var ErrInvalidServerPort = errors.New("port must be a number between 1 and 65534")

// ParseServerPort проверяет значение SERVER_PORT
func ParseServerPort(value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > maxServerPort {
		return 0, ErrInvalidServerPort
	}
	return port, nil
}

// GRPCPort возвращает порт gRPC сервера: SERVER_PORT + 1
func (c *Config) GRPCPort() (string, error) {
	httpPort, err := ParseServerPort(c.ServerPort)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(httpPort + 1), nil
}
