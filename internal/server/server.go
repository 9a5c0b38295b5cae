package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/crop-recommender/config"
)

// Settings are the parsed server options
type Settings struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// TrustedProxies may set X-Forwarded-For; empty means the socket peer is the client
	TrustedProxies []string
}

// ParseSettings applies defaults to the raw server configuration
func ParseSettings(cfg *config.ServerConfig) (Settings, error) {
	settings := Settings{
		Port:         "5000",
		Environment:  "development",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if cfg == nil {
		return settings, nil
	}

	if cfg.Port != "" {
		settings.Port = cfg.Port
	}
	if cfg.Environment != "" {
		settings.Environment = cfg.Environment
	}

	if cfg.ReadTimeout != "" {
		duration, err := time.ParseDuration(cfg.ReadTimeout)
		if err != nil {
			return settings, fmt.Errorf("invalid read timeout '%s': %v", cfg.ReadTimeout, err)
		}
		settings.ReadTimeout = duration
	}

	if cfg.WriteTimeout != "" {
		duration, err := time.ParseDuration(cfg.WriteTimeout)
		if err != nil {
			return settings, fmt.Errorf("invalid write timeout '%s': %v", cfg.WriteTimeout, err)
		}
		settings.WriteTimeout = duration
	}

	for _, proxy := range strings.Split(cfg.TrustedProxies, ",") {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			settings.TrustedProxies = append(settings.TrustedProxies, proxy)
		}
	}

	return settings, nil
}

// NewHTTPServer wraps handler in an http.Server listening on every interface
func NewHTTPServer(settings Settings, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + settings.Port,
		Handler:      handler,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
	}
}
