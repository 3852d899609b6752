package reclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http/httpguts"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// Builder stages a reapi.Config. The zero value is not usable; start from
// NewBuilder.
type Builder struct {
	config reapi.Config
}

// NewBuilder returns a builder holding the defaults: the local cluster
// address, a 30 second timeout, TLS verification on and the library
// User-Agent.
func NewBuilder() *Builder {
	return &Builder{
		config: reapi.Config{
			BaseURL:   reapi.DefaultBaseURL,
			Timeout:   reapi.DefaultTimeout,
			UserAgent: reapi.DefaultUserAgent,
		},
	}
}

// BaseURL sets the REST API root.
func (b *Builder) BaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL

	return b
}

// Credentials sets the basic auth pair.
func (b *Builder) Credentials(username, password string) *Builder {
	b.config.Username = username
	b.config.Password = password

	return b
}

// Timeout bounds every request.
func (b *Builder) Timeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout

	return b
}

// Insecure disables TLS certificate verification.
func (b *Builder) Insecure(insecure bool) *Builder {
	b.config.Insecure = insecure

	return b
}

// UserAgent overrides the client identifier, e.g. "redisctl/1.2.3".
func (b *Builder) UserAgent(userAgent string) *Builder {
	b.config.UserAgent = userAgent

	return b
}

// Logger sets the diagnostics sink.
func (b *Builder) Logger(logger reapi.Logger) *Builder {
	b.config.Logger = logger

	return b
}

// Debug enables request/response logging.
func (b *Builder) Debug(debug bool) *Builder {
	b.config.Debug = debug

	return b
}

// Registerer enables Prometheus metrics on reg.
func (b *Builder) Registerer(reg prometheus.Registerer) *Builder {
	b.config.Registerer = reg

	return b
}

// Config validates and returns a copy of the staged configuration.
func (b *Builder) Config() (*reapi.Config, error) {
	config := b.config

	err := validateConfig(&config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// Build validates the staged configuration and creates a client.
func (b *Builder) Build() (reapi.Client, error) {
	config, err := b.Config()
	if err != nil {
		return nil, err
	}

	return New(config)
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func validateConfig(config *reapi.Config) error {
	if config.BaseURL == "" {
		return reapi.NewValidationError(reapi.ErrBaseURLRequired)
	}

	if config.Timeout <= 0 {
		return reapi.NewValidationError(reapi.ErrInvalidTimeout)
	}

	if config.UserAgent == "" || !httpguts.ValidHeaderFieldValue(config.UserAgent) {
		return reapi.NewValidationError(fmt.Errorf("%w: %q", reapi.ErrInvalidUserAgent, config.UserAgent))
	}

	err := configValidator.Struct(config)
	if err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			first := fieldErrors[0]

			return reapi.NewValidationError(fmt.Errorf("invalid %s: failed %q check on %q", first.Field(), first.Tag(), first.Value()))
		}

		return reapi.NewValidationError(err)
	}

	return nil
}
