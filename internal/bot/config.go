package bot

// Config represents the configuration for the bot
type Config struct {
	// Default hour of day for plan reminders (0-23)
	DefaultNotificationHour int
	// How many today's tasks to show before truncating the list
	MaxTasksShown int
	// How many applications to show before truncating the list
	MaxApplicationsShown int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultNotificationHour: 9,
		MaxTasksShown:           15,
		MaxApplicationsShown:    15,
	}
}
