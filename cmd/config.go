package cmd

import (
	"fmt"
	"net/url"
)

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	LandingDir     string
	StagingDir     string
	ImportSchedule string
	ReportSchedule string
	RankWorkers    int
	LogLevel       string
}

// DSN returns the key/value connection string used by the gorm postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.sslMode())
}

// DatabaseURL returns the same connection as a postgres:// URL.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.sslMode()}}.Encode(),
	}
	return u.String()
}

func (c Config) sslMode() string {
	if c.DBSslMode == "" {
		return "disable"
	}
	return c.DBSslMode
}
