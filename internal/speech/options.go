package speech

import "net/http"

// clientConfig holds shared configuration for speech clients.
type clientConfig struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Option is a functional option for configuring a speech client.
type Option func(*clientConfig)

// WithBaseURL overrides the backend's default API endpoint.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithModel sets the default TTS model for requests that do not specify
// their own.
func WithModel(model string) Option {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithHTTPClient replaces the underlying HTTP client. Mainly useful for
// tests and custom timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}
