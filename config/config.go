package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	HTTP      HTTP
	API       API
	Dashboard Dashboard
	Jobs      Jobs
}

type HTTP struct {
	Port            int           `env:"HTTP_PORT" envDefault:"8080"`
	Debug           bool          `env:"HTTP_DEBUG" envDefault:"false"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type API struct {
	Debug    bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout  time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	YahooApi YahooApi
}

type YahooApi struct {
	Url string `env:"YAHOO_API_URL" envDefault:"https://query2.finance.yahoo.com"`
}

type Dashboard struct {
	Title          string   `env:"DASHBOARD_TITLE" envDefault:"Stock Market Dashboard"`
	DefaultTickers []string `env:"DEFAULT_TICKERS" envDefault:"NVDA,AAPL,GOOGL,MSFT,META,TSLA,AMD,AMZN,NFLX,INTC,SOUN,PLTR,AVGO,RGTI,IONQ"`
	Timezone       string   `env:"MARKET_TIMEZONE" envDefault:"America/New_York"`
	HistoryDays    int      `env:"HISTORY_DAYS" envDefault:"2"`
}

type Jobs struct {
	MarketStatusInterval time.Duration `env:"MARKET_STATUS_JOB_INTERVAL" envDefault:"1m"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
