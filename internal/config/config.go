package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Weights of the hiring authenticity score.
type AuthenticityWeights struct {
	HiringVelocity  float64 `yaml:"hiring_velocity" json:"hiringVelocity"`
	ResponseRate    float64 `yaml:"response_rate" json:"responseRate"`
	PostingDuration float64 `yaml:"posting_duration" json:"postingDuration"`
	JobQuality      float64 `yaml:"job_quality" json:"jobQuality"`
	CompanyMaturity float64 `yaml:"company_maturity" json:"companyMaturity"`
}

func (w AuthenticityWeights) Sum() float64 {
	return w.HiringVelocity + w.ResponseRate + w.PostingDuration + w.JobQuality + w.CompanyMaturity
}

// Weights of the overall score computed from the score breakdown.
type OverallWeights struct {
	HiringVelocity       float64 `yaml:"hiring_velocity" json:"hiringVelocity"`
	ResponseRate         float64 `yaml:"response_rate" json:"responseRate"`
	JobPostingDuration   float64 `yaml:"job_posting_duration" json:"jobPostingDuration"`
	EmployeeSatisfaction float64 `yaml:"employee_satisfaction" json:"employeeSatisfaction"`
	CompanyStability     float64 `yaml:"company_stability" json:"companyStability"`
}

func (w OverallWeights) Sum() float64 {
	return w.HiringVelocity + w.ResponseRate + w.JobPostingDuration + w.EmployeeSatisfaction + w.CompanyStability
}

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreNone   = "none"
)

type Config struct {
	App struct {
		Addr string `yaml:"addr" json:"addr"`
	} `yaml:"app" json:"app"`

	Logging struct {
		Level       string `yaml:"level" json:"level"`
		Development bool   `yaml:"development" json:"development"`
	} `yaml:"logging" json:"logging"`

	Providers struct {
		Timeout    time.Duration `yaml:"timeout" json:"timeout"`
		RatePerSec float64       `yaml:"rate_per_sec" json:"ratePerSec"`
		Burst      int           `yaml:"burst" json:"burst"`
		Seed       int64         `yaml:"seed" json:"seed"` // 0 = seeded from the clock
	} `yaml:"providers" json:"providers"`

	Scoring struct {
		AuthenticityWeights AuthenticityWeights `yaml:"authenticity_weights" json:"authenticityWeights"`
		OverallWeights      OverallWeights      `yaml:"overall_weights" json:"overallWeights"`
	} `yaml:"scoring" json:"scoring"`

	Store struct {
		Backend             string        `yaml:"backend" json:"backend"`
		TTL                 time.Duration `yaml:"ttl" json:"ttl"`
		PurgeInterval       time.Duration `yaml:"purge_interval" json:"purgeInterval"`
		SQLitePath          string        `yaml:"sqlite_path" json:"sqlitePath"`
		RedisURL            string        `yaml:"redis_url" json:"redisUrl"`
		RedisKeyringAccount string        `yaml:"redis_keyring_account" json:"redisKeyringAccount"`
	} `yaml:"store" json:"store"`

	Events struct {
		NATSEnabled bool   `yaml:"nats_enabled" json:"natsEnabled"`
		NATSURL     string `yaml:"nats_url" json:"natsUrl"`
	} `yaml:"events" json:"events"`
}

func Default() Config {
	var cfg Config
	cfg.App.Addr = "127.0.0.1:38472"

	cfg.Logging.Level = "info"

	cfg.Providers.Timeout = 10 * time.Second
	cfg.Providers.RatePerSec = 5
	cfg.Providers.Burst = 5

	cfg.Scoring.AuthenticityWeights = AuthenticityWeights{
		HiringVelocity:  0.30,
		ResponseRate:    0.25,
		PostingDuration: 0.20,
		JobQuality:      0.15,
		CompanyMaturity: 0.10,
	}
	cfg.Scoring.OverallWeights = OverallWeights{
		HiringVelocity:       0.25,
		ResponseRate:         0.25,
		JobPostingDuration:   0.20,
		EmployeeSatisfaction: 0.20,
		CompanyStability:     0.10,
	}

	cfg.Store.Backend = StoreSQLite
	cfg.Store.TTL = 7 * 24 * time.Hour
	cfg.Store.PurgeInterval = time.Hour
	cfg.Store.SQLitePath = "truthrecruit.db"
	cfg.Store.RedisURL = "redis://localhost:6379/0"

	cfg.Events.NATSURL = "nats://localhost:4222"
	return cfg
}

// Load reads path on top of Default, so a partial file keeps the defaults for
// anything it leaves out.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
