package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateVideos(); err != nil {
		return err
	}
	if err := c.validateContact(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Dataset) == "" {
		return errors.New("paths.dataset must be set")
	}
	if strings.TrimSpace(c.Paths.VideosDir) == "" {
		return errors.New("paths.videos_dir must be set")
	}
	return nil
}

func (c *Config) validateVideos() error {
	if len(c.Videos.Extension) < 2 || strings.ContainsAny(c.Videos.Extension[1:], "./\\") {
		return fmt.Errorf("videos.extension %q must look like .mp4", c.Videos.Extension)
	}
	if strings.ContainsAny(c.Videos.FallbackFile, "/\\") {
		return errors.New("videos.fallback_file must be a bare filename")
	}
	return nil
}

func (c *Config) validateContact() error {
	switch c.Contact.Provider {
	case ProviderResend:
		if err := validateURL("contact.resend.base_url", c.Contact.Resend.BaseURL); err != nil {
			return err
		}
	case ProviderFormSubmit:
		if err := validateURL("contact.formsubmit.ajax_endpoint", c.Contact.FormSubmit.AjaxEndpoint); err != nil {
			return err
		}
		if c.Contact.FormSubmit.Fallback {
			if err := validateURL("contact.formsubmit.fallback_endpoint", c.Contact.FormSubmit.FallbackEndpoint); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("contact.provider must be %q or %q, got %q", ProviderResend, ProviderFormSubmit, c.Contact.Provider)
	}
	if c.Contact.RateLimitRPS < 0 {
		return errors.New("contact.rate_limit_rps must be zero (disabled) or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}
