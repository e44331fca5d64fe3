package settings

type Config struct {
	Logger Logger `mapstructure:"logger"`
	Queue  Queue  `mapstructure:"queue"`
	Worker Worker `mapstructure:"worker"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

// Queue is the configuration for a blocking queue
type Queue struct {
	Name              string `mapstructure:"name"`
	SlowWaitThreshold int    `mapstructure:"slow_wait_threshold"` // Milliseconds, 0 disables
	ClockResolution   int    `mapstructure:"clock_resolution"`    // Milliseconds, 0 reads the wall clock
}

// Worker is the configuration for a queue consumer pool
type Worker struct {
	Workers         int `mapstructure:"workers"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // Milliseconds spent draining after cancel, 0 disables
}
