// internal/models/service_config.go
package models

import "sync"

// ServiceConfig is the process-wide upstream configuration. BaseURL and APIKey are fixed at
// construction; the license key is the only field that changes at runtime and is only ever
// written through SetLicenseKey.
type ServiceConfig struct {
	baseURL string
	apiKey  string

	mu         sync.RWMutex
	licenseKey string
}

func NewServiceConfig(baseURL, apiKey, licenseKey string) *ServiceConfig {
	return &ServiceConfig{
		baseURL:    baseURL,
		apiKey:     apiKey,
		licenseKey: licenseKey,
	}
}

func (c *ServiceConfig) BaseURL() string { return c.baseURL }

func (c *ServiceConfig) APIKey() string { return c.apiKey }

// LicenseKey returns a snapshot of the current key.
func (c *ServiceConfig) LicenseKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.licenseKey
}

// SetLicenseKey replaces the key. It waits for in-flight WithLicenseKey callers to finish, so
// a dispatch never starts under one key and completes under another.
func (c *ServiceConfig) SetLicenseKey(key string) {
	c.mu.Lock()
	c.licenseKey = key
	c.mu.Unlock()
}

// WithLicenseKey runs fn while holding the read guard, passing the key in effect.
func (c *ServiceConfig) WithLicenseKey(fn func(licenseKey string)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.licenseKey)
}
