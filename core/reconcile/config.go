package reconcile

// Config holds reconcile engine settings.
type Config struct {
	// HistoryWindow caps the number of usage history entries kept per tag.
	HistoryWindow int `mapstructure:"history_window" default:"7"`
	// SeedSubscriptions creates one push subscription per policy for new settings.
	SeedSubscriptions bool `mapstructure:"seed_subscriptions" default:"true"`
}

func (c Config) historyWindow() int {
	if c.HistoryWindow <= 0 {
		return 7
	}
	return c.HistoryWindow
}
