package config

import "time"

// ServerConfig represents the configuration for the dashboard HTTP server
type ServerConfig struct {
	ListenAddress string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// ClassifierConfig represents the configuration for the remote
// classification service
type ClassifierConfig struct {
	Provider string
	Endpoint string
	Timeout  time.Duration
}

// ScanConfig represents the configuration for the scan workflow
type ScanConfig struct {
	RefreshDelay time.Duration
}

// TrendConfig represents the configuration for trend aggregation
type TrendConfig struct {
	WindowSize int
}

// HistoryConfig represents the configuration for the in-memory scan history
type HistoryConfig struct {
	MaxEntries     int
	RecentPageSize int
}

// GetServer returns the server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	readTimeout, err := c.GetDuration("server.read_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	writeTimeout, err := c.GetDuration("server.write_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
	}, nil
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() (ClassifierConfig, error) {
	timeout, err := c.GetDuration("classifier.timeout")
	if err != nil {
		return ClassifierConfig{}, err
	}
	return ClassifierConfig{
		Provider: c.GetString("classifier.provider"),
		Endpoint: c.GetString("classifier.endpoint"),
		Timeout:  timeout,
	}, nil
}

// GetScan returns the scan workflow configuration
func (c *Config) GetScan() (ScanConfig, error) {
	refreshDelay, err := c.GetDuration("scan.refresh_delay")
	if err != nil {
		return ScanConfig{}, err
	}
	return ScanConfig{RefreshDelay: refreshDelay}, nil
}

// GetTrend returns the trend aggregation configuration
func (c *Config) GetTrend() TrendConfig {
	return TrendConfig{WindowSize: c.GetInt("trend.window_size")}
}

// GetHistory returns the scan history configuration
func (c *Config) GetHistory() HistoryConfig {
	return HistoryConfig{
		MaxEntries:     c.GetInt("history.max_entries"),
		RecentPageSize: c.GetInt("history.recent_page_size"),
	}
}
