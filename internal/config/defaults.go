package config

const (
	defaultDatasetPath        = "src/data/projects.json"
	defaultVideosDir          = "src/videos"
	defaultVideoExtension     = ".mp4"
	defaultFallbackVideo      = "background-validacao.mp4"
	defaultWatchDebounceMS    = 500
	defaultContactBind        = "127.0.0.1:8787"
	defaultContactProvider    = ProviderResend
	defaultRequestTimeout     = 15
	defaultRateLimitRPS       = 0.5
	defaultRateLimitBurst     = 5
	defaultMaxBodyBytes       = 64 << 10
	defaultResendBaseURL      = "https://api.resend.com"
	defaultResendFrom         = "Greenline Site <onboarding@resend.dev>"
	defaultContactRecipient   = "info@greenlinewy.com"
	defaultFormSubmitAjax     = "https://formsubmit.co/ajax/info@greenlinewy.com"
	defaultFormSubmitFallback = "https://formsubmit.co/info@greenlinewy.com"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Provider names accepted by contact.provider.
const (
	ProviderResend     = "resend"
	ProviderFormSubmit = "formsubmit"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Dataset:   defaultDatasetPath,
			VideosDir: defaultVideosDir,
		},
		Videos: Videos{
			Extension:       defaultVideoExtension,
			FallbackFile:    defaultFallbackVideo,
			WatchDebounceMS: defaultWatchDebounceMS,
		},
		Contact: Contact{
			Bind:           defaultContactBind,
			Provider:       defaultContactProvider,
			RequestTimeout: defaultRequestTimeout,
			RateLimitRPS:   defaultRateLimitRPS,
			RateLimitBurst: defaultRateLimitBurst,
			MaxBodyBytes:   defaultMaxBodyBytes,
			Resend: Resend{
				BaseURL: defaultResendBaseURL,
				From:    defaultResendFrom,
				To:      []string{defaultContactRecipient},
			},
			FormSubmit: FormSubmit{
				AjaxEndpoint:     defaultFormSubmitAjax,
				FallbackEndpoint: defaultFormSubmitFallback,
				Fallback:         true,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
