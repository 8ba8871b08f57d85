package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideos()
	if err := c.normalizeContact(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := lookupEnv("GREENLINE_DATASET"); ok {
		c.Paths.Dataset = value
	}
	if value, ok := lookupEnv("GREENLINE_VIDEOS_DIR"); ok {
		c.Paths.VideosDir = value
	}
	if strings.TrimSpace(c.Paths.Dataset) == "" {
		c.Paths.Dataset = defaultDatasetPath
	}
	if c.Paths.Dataset, err = expandPath(c.Paths.Dataset); err != nil {
		return fmt.Errorf("paths.dataset: %w", err)
	}
	if strings.TrimSpace(c.Paths.VideosDir) == "" {
		c.Paths.VideosDir = defaultVideosDir
	}
	if c.Paths.VideosDir, err = expandPath(c.Paths.VideosDir); err != nil {
		return fmt.Errorf("paths.videos_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideos() {
	ext := strings.ToLower(strings.TrimSpace(c.Videos.Extension))
	if ext == "" {
		ext = defaultVideoExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Videos.Extension = ext

	c.Videos.FallbackFile = strings.TrimSpace(c.Videos.FallbackFile)
	if c.Videos.FallbackFile == "" {
		c.Videos.FallbackFile = defaultFallbackVideo
	}

	if len(c.Videos.Synonyms) > 0 {
		synonyms := make(map[string]string, len(c.Videos.Synonyms))
		for from, to := range c.Videos.Synonyms {
			from = strings.ToLower(strings.TrimSpace(from))
			if from == "" {
				continue
			}
			synonyms[from] = strings.ToLower(strings.TrimSpace(to))
		}
		c.Videos.Synonyms = synonyms
	}
	if len(c.Videos.Stopwords) > 0 {
		c.Videos.Stopwords = dedupeLower(c.Videos.Stopwords)
	}
	if c.Videos.WatchDebounceMS <= 0 {
		c.Videos.WatchDebounceMS = defaultWatchDebounceMS
	}
}

func (c *Config) normalizeContact() error {
	if value, ok := lookupEnv("GREENLINE_BIND"); ok {
		c.Contact.Bind = value
	}
	c.Contact.Bind = strings.TrimSpace(c.Contact.Bind)
	if c.Contact.Bind == "" {
		c.Contact.Bind = defaultContactBind
	}
	c.Contact.Provider = strings.ToLower(strings.TrimSpace(c.Contact.Provider))
	if c.Contact.Provider == "" {
		c.Contact.Provider = defaultContactProvider
	}
	if c.Contact.RequestTimeout <= 0 {
		c.Contact.RequestTimeout = defaultRequestTimeout
	}
	if c.Contact.MaxBodyBytes <= 0 {
		c.Contact.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Contact.RateLimitRPS > 0 && c.Contact.RateLimitBurst <= 0 {
		c.Contact.RateLimitBurst = defaultRateLimitBurst
	}
	var err error
	if c.Contact.ArchivePath, err = expandPath(strings.TrimSpace(c.Contact.ArchivePath)); err != nil {
		return fmt.Errorf("contact.archive_path: %w", err)
	}

	resend := &c.Contact.Resend
	resend.APIKey = strings.TrimSpace(resend.APIKey)
	if resend.APIKey == "" {
		if value, ok := lookupEnv("RESEND_API_KEY"); ok {
			resend.APIKey = value
		}
	}
	if value, ok := lookupEnv("EMAIL_FROM"); ok {
		resend.From = value
	}
	if value, ok := lookupEnv("EMAIL_TO"); ok {
		resend.To = splitList(value)
	}
	if value, ok := lookupEnv("EMAIL_BCC"); ok {
		resend.BCC = splitList(value)
	}
	resend.BaseURL = strings.TrimRight(strings.TrimSpace(resend.BaseURL), "/")
	if resend.BaseURL == "" {
		resend.BaseURL = defaultResendBaseURL
	}
	resend.From = strings.TrimSpace(resend.From)
	if resend.From == "" {
		resend.From = defaultResendFrom
	}
	resend.To = trimList(resend.To)
	if len(resend.To) == 0 {
		resend.To = []string{defaultContactRecipient}
	}
	resend.BCC = trimList(resend.BCC)

	form := &c.Contact.FormSubmit
	form.AjaxEndpoint = strings.TrimSpace(form.AjaxEndpoint)
	if form.AjaxEndpoint == "" {
		form.AjaxEndpoint = defaultFormSubmitAjax
	}
	form.FallbackEndpoint = strings.TrimSpace(form.FallbackEndpoint)
	if form.FallbackEndpoint == "" {
		form.FallbackEndpoint = defaultFormSubmitFallback
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func splitList(value string) []string {
	return trimList(strings.Split(value, ","))
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dedupeLower(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
