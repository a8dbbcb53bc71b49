package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        Log        `yaml:"log"`
	Data       Data       `yaml:"data"`
	OpenAI     OpenAI     `yaml:"openai"`
	Moderation Moderation `yaml:"moderation"`
}

type Data struct {
	// Path to the menu CSV (category, item, serving size, optional price)
	MenuPath string `yaml:"menu_path" example:"menu.csv"`
	// Path to the delivery cities CSV (city, region)
	CitiesPath string `yaml:"cities_path" example:"us-cities.csv"`
	// Path to the append-only finalized order store
	OrdersPath string `yaml:"orders_path" example:"data/orders.jsonl"`
}

type OpenAI struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required"`
	// API token, may also be supplied via the OPENAI_TOKEN env variable
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Completion model
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
	// Consume fallback completions incrementally instead of one-shot
	Stream bool `yaml:"stream" example:"false"`
}

type Moderation struct {
	// Words that short-circuit routing with a moderation message
	Denylist []string `yaml:"denylist"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Data.MenuPath == "" {
		result.Data.MenuPath = "menu.csv"
	}
	if result.Data.CitiesPath == "" {
		result.Data.CitiesPath = "us-cities.csv"
	}
	if result.Data.OrdersPath == "" {
		result.Data.OrdersPath = "data/orders.jsonl"
	}
	if result.OpenAI.BaseURL == "" {
		result.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if token := os.Getenv("OPENAI_TOKEN"); token != "" {
		result.OpenAI.Token = token
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
