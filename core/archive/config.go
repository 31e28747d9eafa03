package archive

// Config controls raw response archiving.
type Config struct {
	// Enabled archives every ingested payload before it is reconciled.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object key prefix inside the storage bucket.
	Prefix string `mapstructure:"prefix" default:"responses"`
}
