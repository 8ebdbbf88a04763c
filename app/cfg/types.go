package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	ShopsDir          string
	OutputDir         string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Exchange rate configuration
	ExchangeRateURL      string
	ExchangeRateFallback float64

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
