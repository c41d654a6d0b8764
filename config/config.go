package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server Configuration
	ServerPort string

	// Database Configuration
	DatabasePath string

	// LLM Configuration
	LLMProvider          string // "openai", "openrouter", "anthropic" or "mock"
	OpenAIKey            string
	OpenRouterKey        string
	AnthropicKey         string
	OpenAIModel          string
	OpenRouterModel      string
	AnthropicModel       string
	OpenRouterBaseURL    string
	SummarizeConcurrency int

	// News Provider Configuration
	NewsProvider        string // "newsapi" or "rss"
	NewsAPIKey          string
	NewsAPIBaseURL      string
	NewsLanguage        string
	NewsCountry         string
	ArticlesPerCategory int
	RSSFeeds            map[string][]string

	// Refresh Schedule
	DailyRefreshHour   int
	DailyRefreshMinute int

	// Curation Configuration
	MaxCategories                 int
	TopArticlesPerCategory        int
	FreshnessWindows              map[string]int // Hours per category, merged over built-in defaults
	DefaultFreshnessWindowHours   int
	MinFreshnessScore             float64
	MinRelevanceScore             float64
	MinArticlesPerCategory        int
	AutoRefreshFreshnessThreshold float64
	TitleSimilarityThreshold      float64
	ContentSimilarityThreshold    float64
	SelectionEnabled              bool

	// Ranking Weights
	FreshnessWeight float64
	RelevanceWeight float64
	SelectionWeight float64

	// Available briefing categories
	AvailableCategories []string
}

// fileConfig mirrors Config for the optional YAML config file.
// Pointer fields so only keys present in the file override defaults.
type fileConfig struct {
	ServerPort                    *string             `yaml:"server_port"`
	DatabasePath                  *string             `yaml:"database_path"`
	LLMProvider                   *string             `yaml:"llm_provider"`
	OpenAIModel                   *string             `yaml:"openai_model"`
	OpenRouterModel               *string             `yaml:"openrouter_model"`
	AnthropicModel                *string             `yaml:"anthropic_model"`
	OpenRouterBaseURL             *string             `yaml:"openrouter_base_url"`
	SummarizeConcurrency          *int                `yaml:"summarize_concurrency"`
	NewsProvider                  *string             `yaml:"news_provider"`
	NewsAPIBaseURL                *string             `yaml:"news_api_base_url"`
	NewsLanguage                  *string             `yaml:"news_language"`
	NewsCountry                   *string             `yaml:"news_country"`
	ArticlesPerCategory           *int                `yaml:"articles_per_category"`
	RSSFeeds                      map[string][]string `yaml:"rss_feeds"`
	DailyRefreshHour              *int                `yaml:"daily_refresh_hour"`
	DailyRefreshMinute            *int                `yaml:"daily_refresh_minute"`
	MaxCategories                 *int                `yaml:"max_categories"`
	TopArticlesPerCategory        *int                `yaml:"top_articles_per_category"`
	FreshnessWindows              map[string]int      `yaml:"freshness_windows"`
	DefaultFreshnessWindowHours   *int                `yaml:"default_freshness_window_hours"`
	MinFreshnessScore             *float64            `yaml:"min_freshness_score"`
	MinRelevanceScore             *float64            `yaml:"min_relevance_score"`
	MinArticlesPerCategory        *int                `yaml:"min_articles_per_category"`
	AutoRefreshFreshnessThreshold *float64            `yaml:"auto_refresh_freshness_threshold"`
	TitleSimilarityThreshold      *float64            `yaml:"title_similarity_threshold"`
	ContentSimilarityThreshold    *float64            `yaml:"content_similarity_threshold"`
	SelectionEnabled              *bool               `yaml:"selection_enabled"`
	FreshnessWeight               *float64            `yaml:"freshness_weight"`
	RelevanceWeight               *float64            `yaml:"relevance_weight"`
	SelectionWeight               *float64            `yaml:"selection_weight"`
	AvailableCategories           []string            `yaml:"available_categories"`
}

// LoadConfig builds the configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence
func LoadConfig() *Config {
	// Load .env if present; existing environment variables win
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := configFilePath(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			log.Fatalf("Failed to load config file %s: %v", path, err)
		}
	}

	applyEnv(cfg)

	// Validate required configuration
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			log.Fatal("OPENAI_API_KEY is required when LLM_PROVIDER is 'openai'")
		}
	case "openrouter":
		if cfg.OpenRouterKey == "" {
			log.Fatal("OPENROUTER_API_KEY is required when LLM_PROVIDER is 'openrouter'")
		}
	case "anthropic":
		if cfg.AnthropicKey == "" {
			log.Fatal("ANTHROPIC_API_KEY is required when LLM_PROVIDER is 'anthropic'")
		}
	case "mock":
		// No credentials needed
	default:
		log.Fatalf("Unknown LLM_PROVIDER %q (expected openai, openrouter, anthropic or mock)", cfg.LLMProvider)
	}

	switch cfg.NewsProvider {
	case "newsapi":
		if cfg.NewsAPIKey == "" {
			log.Fatal("NEWS_API_KEY is required when NEWS_PROVIDER is 'newsapi'")
		}
	case "rss":
		if len(cfg.RSSFeeds) == 0 {
			log.Fatal("At least one RSS feed is required when NEWS_PROVIDER is 'rss'")
		}
	default:
		log.Fatalf("Unknown NEWS_PROVIDER %q (expected newsapi or rss)", cfg.NewsProvider)
	}

	return cfg
}

func defaultConfig() *Config {
	return &Config{
		ServerPort:           "8080",
		DatabasePath:         "newsbrief.db",
		LLMProvider:          "openai",
		OpenAIModel:          "gpt-4o-mini",
		OpenRouterModel:      "openai/gpt-4o-mini",
		AnthropicModel:       "claude-3-5-haiku-latest",
		OpenRouterBaseURL:    "https://openrouter.ai/api/v1",
		SummarizeConcurrency: 5,

		NewsProvider:        "newsapi",
		NewsAPIBaseURL:      "https://newsapi.org/v2",
		NewsLanguage:        "en",
		NewsCountry:         "us",
		ArticlesPerCategory: 10,
		RSSFeeds: map[string][]string{
			"technology":    {"https://feeds.bbci.co.uk/news/technology/rss.xml"},
			"business":      {"https://feeds.bbci.co.uk/news/business/rss.xml"},
			"politics":      {"https://feeds.bbci.co.uk/news/politics/rss.xml"},
			"health":        {"https://feeds.bbci.co.uk/news/health/rss.xml"},
			"science":       {"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
			"entertainment": {"https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml"},
			"world":         {"https://feeds.bbci.co.uk/news/world/rss.xml"},
		},

		DailyRefreshHour:   6,
		DailyRefreshMinute: 0,

		MaxCategories:                 10,
		TopArticlesPerCategory:        3,
		MinFreshnessScore:             0.3,
		MinRelevanceScore:             0.5,
		MinArticlesPerCategory:        3,
		AutoRefreshFreshnessThreshold: 0.4,
		TitleSimilarityThreshold:      0.85,
		ContentSimilarityThreshold:    0.7,
		SelectionEnabled:              true,

		FreshnessWeight: 0.4,
		RelevanceWeight: 0.4,
		SelectionWeight: 0.2,

		AvailableCategories: []string{
			"technology", "business", "sports", "entertainment", "health",
			"science", "politics", "world", "finance", "environment",
		},
	}
}

func configFilePath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.ServerPort != nil {
		cfg.ServerPort = *fc.ServerPort
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.LLMProvider != nil {
		cfg.LLMProvider = *fc.LLMProvider
	}
	if fc.OpenAIModel != nil {
		cfg.OpenAIModel = *fc.OpenAIModel
	}
	if fc.OpenRouterModel != nil {
		cfg.OpenRouterModel = *fc.OpenRouterModel
	}
	if fc.AnthropicModel != nil {
		cfg.AnthropicModel = *fc.AnthropicModel
	}
	if fc.OpenRouterBaseURL != nil {
		cfg.OpenRouterBaseURL = *fc.OpenRouterBaseURL
	}
	if fc.SummarizeConcurrency != nil {
		cfg.SummarizeConcurrency = *fc.SummarizeConcurrency
	}
	if fc.NewsProvider != nil {
		cfg.NewsProvider = *fc.NewsProvider
	}
	if fc.NewsAPIBaseURL != nil {
		cfg.NewsAPIBaseURL = *fc.NewsAPIBaseURL
	}
	if fc.NewsLanguage != nil {
		cfg.NewsLanguage = *fc.NewsLanguage
	}
	if fc.NewsCountry != nil {
		cfg.NewsCountry = *fc.NewsCountry
	}
	if fc.ArticlesPerCategory != nil {
		cfg.ArticlesPerCategory = *fc.ArticlesPerCategory
	}
	if len(fc.RSSFeeds) > 0 {
		cfg.RSSFeeds = fc.RSSFeeds
	}
	if fc.DailyRefreshHour != nil {
		cfg.DailyRefreshHour = *fc.DailyRefreshHour
	}
	if fc.DailyRefreshMinute != nil {
		cfg.DailyRefreshMinute = *fc.DailyRefreshMinute
	}
	if fc.MaxCategories != nil {
		cfg.MaxCategories = *fc.MaxCategories
	}
	if fc.TopArticlesPerCategory != nil {
		cfg.TopArticlesPerCategory = *fc.TopArticlesPerCategory
	}
	if len(fc.FreshnessWindows) > 0 {
		cfg.FreshnessWindows = fc.FreshnessWindows
	}
	if fc.DefaultFreshnessWindowHours != nil {
		cfg.DefaultFreshnessWindowHours = *fc.DefaultFreshnessWindowHours
	}
	if fc.MinFreshnessScore != nil {
		cfg.MinFreshnessScore = *fc.MinFreshnessScore
	}
	if fc.MinRelevanceScore != nil {
		cfg.MinRelevanceScore = *fc.MinRelevanceScore
	}
	if fc.MinArticlesPerCategory != nil {
		cfg.MinArticlesPerCategory = *fc.MinArticlesPerCategory
	}
	if fc.AutoRefreshFreshnessThreshold != nil {
		cfg.AutoRefreshFreshnessThreshold = *fc.AutoRefreshFreshnessThreshold
	}
	if fc.TitleSimilarityThreshold != nil {
		cfg.TitleSimilarityThreshold = *fc.TitleSimilarityThreshold
	}
	if fc.ContentSimilarityThreshold != nil {
		cfg.ContentSimilarityThreshold = *fc.ContentSimilarityThreshold
	}
	if fc.SelectionEnabled != nil {
		cfg.SelectionEnabled = *fc.SelectionEnabled
	}
	if fc.FreshnessWeight != nil {
		cfg.FreshnessWeight = *fc.FreshnessWeight
	}
	if fc.RelevanceWeight != nil {
		cfg.RelevanceWeight = *fc.RelevanceWeight
	}
	if fc.SelectionWeight != nil {
		cfg.SelectionWeight = *fc.SelectionWeight
	}
	if len(fc.AvailableCategories) > 0 {
		cfg.AvailableCategories = fc.AvailableCategories
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = getEnv("PORT", cfg.ServerPort)
	cfg.DatabasePath = getEnv("DB_PATH", cfg.DatabasePath)

	cfg.LLMProvider = getEnv("LLM_PROVIDER", cfg.LLMProvider)
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenRouterKey = os.Getenv("OPENROUTER_API_KEY")
	cfg.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenRouterModel = getEnv("OPENROUTER_MODEL", cfg.OpenRouterModel)
	cfg.AnthropicModel = getEnv("ANTHROPIC_MODEL", cfg.AnthropicModel)
	cfg.OpenRouterBaseURL = getEnv("OPENROUTER_BASE_URL", cfg.OpenRouterBaseURL)
	cfg.SummarizeConcurrency = getEnvInt("SUMMARIZE_CONCURRENCY", cfg.SummarizeConcurrency)

	cfg.NewsProvider = getEnv("NEWS_PROVIDER", cfg.NewsProvider)
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.NewsAPIBaseURL = getEnv("NEWS_API_BASE_URL", cfg.NewsAPIBaseURL)
	cfg.NewsLanguage = getEnv("NEWS_LANGUAGE", cfg.NewsLanguage)
	cfg.NewsCountry = getEnv("NEWS_COUNTRY", cfg.NewsCountry)
	cfg.ArticlesPerCategory = getEnvInt("ARTICLES_PER_CATEGORY", cfg.ArticlesPerCategory)

	cfg.DailyRefreshHour = getEnvInt("DAILY_REFRESH_HOUR", cfg.DailyRefreshHour)
	cfg.DailyRefreshMinute = getEnvInt("DAILY_REFRESH_MINUTE", cfg.DailyRefreshMinute)

	cfg.MaxCategories = getEnvInt("MAX_CATEGORIES", cfg.MaxCategories)
	cfg.TopArticlesPerCategory = getEnvInt("TOP_ARTICLES_PER_CATEGORY", cfg.TopArticlesPerCategory)
	cfg.DefaultFreshnessWindowHours = getEnvInt("DEFAULT_FRESHNESS_WINDOW_HOURS", cfg.DefaultFreshnessWindowHours)
	cfg.MinFreshnessScore = getEnvFloat("MIN_FRESHNESS_SCORE", cfg.MinFreshnessScore)
	cfg.MinRelevanceScore = getEnvFloat("MIN_RELEVANCE_SCORE", cfg.MinRelevanceScore)
	cfg.MinArticlesPerCategory = getEnvInt("MIN_ARTICLES_PER_CATEGORY", cfg.MinArticlesPerCategory)
	cfg.AutoRefreshFreshnessThreshold = getEnvFloat("AUTO_REFRESH_FRESHNESS_THRESHOLD", cfg.AutoRefreshFreshnessThreshold)
	cfg.TitleSimilarityThreshold = getEnvFloat("TITLE_SIMILARITY_THRESHOLD", cfg.TitleSimilarityThreshold)
	cfg.ContentSimilarityThreshold = getEnvFloat("CONTENT_SIMILARITY_THRESHOLD", cfg.ContentSimilarityThreshold)
	cfg.SelectionEnabled = getEnvBool("SELECTION_ENABLED", cfg.SelectionEnabled)

	cfg.FreshnessWeight = getEnvFloat("FRESHNESS_WEIGHT", cfg.FreshnessWeight)
	cfg.RelevanceWeight = getEnvFloat("RELEVANCE_WEIGHT", cfg.RelevanceWeight)
	cfg.SelectionWeight = getEnvFloat("SELECTION_WEIGHT", cfg.SelectionWeight)
}

// IsValidCategory reports whether a category can be requested in a briefing
func (c *Config) IsValidCategory(category string) bool {
	for _, available := range c.AvailableCategories {
		if category == available {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
