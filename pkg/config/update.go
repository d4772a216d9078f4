package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	res = append(res, c.databaseOptions()...)
	res = append(res, c.sourcesOptions()...)
	res = append(res, c.translateOptions()...)
	res = append(res, c.serverOptions()...)

	var s string
	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func (c *Config) databaseOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.Driver
	if s != "" {
		res = append(res, OptDatabaseDriver(s))
	}
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	s = c.Database.SQLitePath
	if s != "" {
		res = append(res, OptDatabaseSQLitePath(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}
	return res
}

func (c *Config) sourcesOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Sources.PerenualURL
	if s != "" {
		res = append(res, OptSourcesPerenualURL(s))
	}
	s = c.Sources.PerenualKey
	if s != "" {
		res = append(res, OptSourcesPerenualKey(s))
	}
	s = c.Sources.TrefleURL
	if s != "" {
		res = append(res, OptSourcesTrefleURL(s))
	}
	s = c.Sources.TrefleToken
	if s != "" {
		res = append(res, OptSourcesTrefleToken(s))
	}
	s = c.Sources.WikipediaURL
	if s != "" {
		res = append(res, OptSourcesWikipediaURL(s))
	}
	s = c.Sources.CSVPath
	if s != "" {
		res = append(res, OptSourcesCSVPath(s))
	}
	i = c.Sources.CSVMaxRead
	if i > 0 {
		res = append(res, OptSourcesCSVMaxRead(i))
	}
	i = c.Sources.TimeoutSec
	if i > 0 {
		res = append(res, OptSourcesTimeoutSec(i))
	}
	i = c.Sources.ListingMax
	if i > 0 {
		res = append(res, OptSourcesListingMax(i))
	}
	return res
}

func (c *Config) translateOptions() []Option {
	var res []Option
	var s string
	s = c.Translate.Provider
	if s != "" {
		res = append(res, OptTranslateProvider(s))
	}
	s = c.Translate.URL
	if s != "" {
		res = append(res, OptTranslateURL(s))
	}
	s = c.Translate.APIKey
	if s != "" {
		res = append(res, OptTranslateAPIKey(s))
	}
	s = c.Translate.Target
	if s != "" {
		res = append(res, OptTranslateTarget(s))
	}
	if i := c.Translate.CacheSize; i > 0 {
		res = append(res, OptTranslateCacheSize(i))
	}
	return res
}

func (c *Config) serverOptions() []Option {
	var res []Option
	if s := c.Server.Host; s != "" {
		res = append(res, OptServerHost(s))
	}
	if i := c.Server.Port; i > 0 {
		res = append(res, OptServerPort(i))
	}
	res = append(res, OptServerDBFirst(c.Server.DBFirst))
	if i := c.Server.ListConcurrency; i > 0 {
		res = append(res, OptServerListConcurrency(i))
	}
	if i := c.Server.PageSize; i > 0 {
		res = append(res, OptServerPageSize(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.Driver": {"postgres": s, "sqlite": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Translate.Provider": {"none": s, "libretranslate": s,
			"deepl": s, "google": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
