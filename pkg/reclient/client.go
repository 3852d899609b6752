package reclient

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/reapi-client/internal/client"
	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// New creates a client from config. The config is validated but not
// modified.
func New(config *reapi.Config) (reapi.Client, error) {
	if config == nil {
		return nil, reapi.NewValidationError(client.ErrConfigRequired)
	}

	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithPassword creates a client for baseURL with basic auth and defaults
// for everything else.
func NewWithPassword(baseURL, username, password string) (reapi.Client, error) {
	return NewBuilder().BaseURL(baseURL).Credentials(username, password).Build()
}

// ConfigFromEnv reads REDIS_ENTERPRISE_URL, REDIS_ENTERPRISE_USER,
// REDIS_ENTERPRISE_PASSWORD and REDIS_ENTERPRISE_INSECURE. A missing
// password is an unauthorized-kind error.
func ConfigFromEnv() (*reapi.Config, error) {
	v := viper.New()

	v.SetDefault("url", reapi.DefaultBaseURL)
	v.SetDefault("user", reapi.DefaultUsername)
	v.SetDefault("insecure", false)

	_ = v.BindEnv("url", constants.EnvURL)
	_ = v.BindEnv("user", constants.EnvUser)
	_ = v.BindEnv("password", constants.EnvPassword)
	_ = v.BindEnv("insecure", constants.EnvInsecure)

	if !v.IsSet("password") {
		return nil, &reapi.Error{Kind: reapi.KindUnauthorized, Err: reapi.ErrPasswordRequired}
	}

	return NewBuilder().
		BaseURL(v.GetString("url")).
		Credentials(v.GetString("user"), v.GetString("password")).
		Insecure(v.GetBool("insecure")).
		Config()
}

// NewFromEnv creates a client from the REDIS_ENTERPRISE_* environment
// variables.
func NewFromEnv() (reapi.Client, error) {
	config, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(config)
}
