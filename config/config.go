package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig      `yaml:"logging"`
	PostgresURL string             `yaml:"postgres_url"`
	YouTube     YouTubeConfig      `yaml:"youtube"`
	Groq        GroqConfig         `yaml:"groq"`
	Pipeline    PipelineConfig     `yaml:"pipeline"`
	Dashboard   DashboardConfig    `yaml:"dashboard"`
	Channels    []MonitoredChannel `yaml:"channels"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// YouTubeConfig 는 댓글 수집에 사용하는 YouTube Data API 접속 정보를 담는다.
// APIKey 가 비어 있으면 환경변수 YOUTUBE_API_KEY 를 사용한다.
type YouTubeConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// GroqConfig 는 judol 단어 추출용 LLM 배치 호출 설정을 담는다.
// APIKey 가 비어 있으면 환경변수 GROQ_API_KEY 를 사용한다.
type GroqConfig struct {
	APIKey              string  `yaml:"api_key"`
	BaseURL             string  `yaml:"base_url"`
	Model               string  `yaml:"model"`
	Temperature         float64 `yaml:"temperature"`
	MaxCompletionTokens int     `yaml:"max_completion_tokens"`
}

// PipelineConfig 는 수집/배치 파이프라인의 한도와 윈도우를 정의한다.
type PipelineConfig struct {
	// QuotaUnits 는 한 번의 수집 실행에서 사용할 수 있는 YouTube API 호출 총량이다.
	QuotaUnits int `yaml:"quota_units"`

	// PageSize 는 commentThreads.list 호출 한 번에 요청하는 최대 댓글 수이다.
	PageSize int `yaml:"page_size"`

	// ChunkSize 는 LLM 배치 요청 하나에 담는 댓글 수이다.
	ChunkSize int `yaml:"chunk_size"`

	// CompletionWindow 는 원격 배치 작업의 완료 시한이다. (예: "168h")
	CompletionWindow string `yaml:"completion_window"`

	// CacheTTLHours 는 댓글 페이지 캐시의 보존 시간이다. 0 이하이면 24 를 사용한다.
	CacheTTLHours int `yaml:"cache_ttl_hours"`

	// WordsPageWindow / ChannelsPageWindow 는 대시보드 페이지네이션 윈도우 크기이다.
	WordsPageWindow    int `yaml:"words_page_window"`
	ChannelsPageWindow int `yaml:"channels_page_window"`

	// CollectCron / CheckCron 은 collector 가 사용하는 크론 스펙이다.
	CollectCron string `yaml:"collect_cron"`
	CheckCron   string `yaml:"check_cron"`
}

// DashboardConfig 는 대시보드 basic auth 계정 정보를 담는다.
type DashboardConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MonitoredChannel is a single monitored channel configuration item.
// Weight determines its share of the harvesting quota.
type MonitoredChannel struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.PostgresURL == "" {
		c.PostgresURL = os.Getenv("POSTGRES_URL")
	}
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if c.Groq.APIKey == "" {
		c.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama-3.3-70b-versatile"
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = 1
	}
	if c.Groq.MaxCompletionTokens <= 0 {
		c.Groq.MaxCompletionTokens = 1024
	}
	if c.Pipeline.QuotaUnits <= 0 {
		c.Pipeline.QuotaUnits = 10000
	}
	if c.Pipeline.PageSize <= 0 {
		c.Pipeline.PageSize = 100
	}
	if c.Pipeline.ChunkSize <= 0 {
		c.Pipeline.ChunkSize = 50
	}
	if c.Pipeline.CompletionWindow == "" {
		c.Pipeline.CompletionWindow = "168h"
	}
	if c.Pipeline.CacheTTLHours <= 0 {
		c.Pipeline.CacheTTLHours = 24
	}
	if c.Pipeline.WordsPageWindow <= 0 {
		c.Pipeline.WordsPageWindow = 6
	}
	if c.Pipeline.ChannelsPageWindow <= 0 {
		c.Pipeline.ChannelsPageWindow = 1
	}
	if c.Pipeline.CollectCron == "" {
		c.Pipeline.CollectCron = "@daily"
	}
	if c.Pipeline.CheckCron == "" {
		c.Pipeline.CheckCron = "@hourly"
	}
	if c.Dashboard.Username == "" {
		c.Dashboard.Username = os.Getenv("DASHBOARD_USERNAME")
	}
	if c.Dashboard.Password == "" {
		c.Dashboard.Password = os.Getenv("DASHBOARD_PASSWORD")
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
