package domain

import (
	"time"
)

// Request/Response Models

// PredictionInputs holds the validated patient parameters supplied by the
// input collector. The engine never mutates them.
type PredictionInputs struct {
	Age           float64       `json:"age"`
	AMHLevel      float64       `json:"amh_level"`
	EstrogenLevel float64       `json:"estrogen_level"`
	BMI           *float64      `json:"bmi,omitempty"` // part of the contract, unused in computation
	PriorCycles   int           `json:"prior_cycles"`
	DiagnosisType DiagnosisType `json:"diagnosis_type"`
}

// Range is a symmetric-by-construction confidence interval [Low, High]
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// OocyteEstimate is the predicted oocyte yield with its interval and
// population-relative label
type OocyteEstimate struct {
	Predicted       float64 `json:"predicted"`
	Range           Range   `json:"range"`
	PercentileLabel string  `json:"percentile_label"`
}

// ProcedureResult is the fertilization outcome for a single procedure
type ProcedureResult struct {
	Predicted                float64 `json:"predicted"`
	Range                    Range   `json:"range"`
	FertilizationRatePercent float64 `json:"fertilization_rate_percent"`
	Explanation              string  `json:"explanation"`
}

// FertilizationEstimate carries both procedure outcomes plus the recommendation
type FertilizationEstimate struct {
	ConventionalIVF      ProcedureResult `json:"conventional_ivf"`
	ICSI                 ProcedureResult `json:"icsi"`
	RecommendedProcedure Procedure       `json:"recommended_procedure"`
	Explanation          string          `json:"explanation"`
}

// BlastocystEstimate is the predicted blastocyst count at Day 5-6
type BlastocystEstimate struct {
	Predicted              float64 `json:"predicted"`
	Range                  Range   `json:"range"`
	DevelopmentRatePercent float64 `json:"development_rate_percent"`
}

// EuploidyEstimate is the chromosomally-normal fraction and expected count
type EuploidyEstimate struct {
	EuploidPercentage          float64 `json:"euploid_percentage"`
	Range                      Range   `json:"range"`
	ExpectedEuploidBlastocysts float64 `json:"expected_euploid_blastocysts"`
}

// StageLosses is the attrition at each stage transition. Every loss is
// derived by subtraction from the adjacent counts, never modeled independently.
type StageLosses struct {
	ImmatureOocytes          float64 `json:"immature_oocytes"`
	FertilizationFailure     float64 `json:"fertilization_failure"`
	Day3Arrest               float64 `json:"day3_arrest"`
	BlastocystArrest         float64 `json:"blastocyst_arrest"`
	ChromosomalAbnormalities float64 `json:"chromosomal_abnormalities"`
}

// CascadeFlow is the reconciled stage ledger. For every adjacent pair of
// stages, upstream = downstream + loss within floating-point tolerance.
type CascadeFlow struct {
	TotalOocytes         float64     `json:"total_oocytes"`
	MatureOocytes        float64     `json:"mature_oocytes"`
	FertilizedEmbryos    float64     `json:"fertilized_embryos"`
	Day3Embryos          float64     `json:"day3_embryos"`
	Blastocysts          float64     `json:"blastocysts"`
	EuploidBlastocysts   float64     `json:"euploid_blastocysts"`
	AneuploidBlastocysts float64     `json:"aneuploid_blastocysts"`
	StageLosses          StageLosses `json:"stage_losses"`
}

// PredictionResults is the complete engine output. Every numeric field is a
// finite, non-NaN float; validation failure is represented, not raised.
type PredictionResults struct {
	ExpectedOocytes       OocyteEstimate        `json:"expected_oocytes"`
	ExpectedFertilization FertilizationEstimate `json:"expected_fertilization"`
	ExpectedBlastocysts   BlastocystEstimate    `json:"expected_blastocysts"`
	EuploidyRates         EuploidyEstimate      `json:"euploidy_rates"`
	CascadeFlow           CascadeFlow           `json:"cascade_flow"`
	ConfidenceLevel       ConfidenceLevel       `json:"confidence_level"`
	ClinicalNotes         []string              `json:"clinical_notes"`
	References            []string              `json:"references"`
}

// Database Models

// Snapshot is a stored prediction: inputs and results as computed at save
// time. The persistence layer never recomputes.
type Snapshot struct {
	ID        string            `json:"id"`
	Inputs    PredictionInputs  `json:"inputs"`
	Results   PredictionResults `json:"results"`
	CreatedAt time.Time         `json:"created_at"`
}

// Configuration Models

// Config represents the main application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StorageConfig selects and configures the snapshot store
type StorageConfig struct {
	Driver          string        `mapstructure:"driver"` // "sqlite" or "postgres"
	SQLitePath      string        `mapstructure:"sqlite_path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// CacheConfig configures the deterministic-result caches
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxMemorySize int           `mapstructure:"max_memory_size"`
	RedisURL      string        `mapstructure:"redis_url"`
	DefaultTTL    time.Duration `mapstructure:"default_ttl"`
}

// RateLimitConfig configures the API token-bucket limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
