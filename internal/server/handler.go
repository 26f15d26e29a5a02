// internal/server/handler.go
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	commonerrors "lookup-relay/internal/common/errors"
	"lookup-relay/internal/common/logger"
	"lookup-relay/internal/common/validation"
	"lookup-relay/internal/models"
	"lookup-relay/pkg/registry"
)

const maxBodyBytes = 64 * 1024

// Parser turns raw command text into an intent.
type Parser interface {
	Parse(raw string) models.Intent
	Prefix() string
}

// Dispatcher executes an intent.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent models.Intent) models.LookupResult
}

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

type Dependencies struct {
	Parser     Parser
	Dispatcher Dispatcher
	Service    *models.ServiceConfig
	Metrics    http.Handler
	Checks     map[string]ReadinessCheck
	Version    string
	Logger     logger.Logger
}

type Handler struct {
	parser     Parser
	dispatcher Dispatcher
	service    *models.ServiceConfig
	metrics    http.Handler
	checks     map[string]ReadinessCheck
	version    string
	logger     logger.Logger
}

func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		parser:     deps.Parser,
		dispatcher: deps.Dispatcher,
		service:    deps.Service,
		metrics:    deps.Metrics,
		checks:     deps.Checks,
		version:    deps.Version,
		logger:     deps.Logger,
	}
}

// chatbox accepts the form field "command".
func (h *Handler) chatbox(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeInvalidPayload(w, r, "invalid form body", nil)
		return
	}
	h.run(w, r, r.PostFormValue("command"))
}

// webhook accepts a Discord-style JSON payload whose content is the command.
func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := readAllLimit(r.Body, maxBodyBytes)
	if err != nil {
		writeInvalidPayload(w, r, "unreadable body", nil)
		return
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		writeInvalidPayload(w, r, "invalid json body", nil)
		return
	}

	result, err := validation.ValidateInput(doc, validation.WebhookSchema)
	if err != nil {
		h.logger.Error("webhook schema validation failed", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, string(commonerrors.ErrCodeInternal), commonerrors.MsgInternal, nil, requestIDFromContext(r.Context()))
		return
	}
	if !result.Valid {
		writeInvalidPayload(w, r, "invalid webhook payload", result.Errors)
		return
	}

	obj, _ := doc.(map[string]interface{})
	content, _ := obj["content"].(string)
	h.run(w, r, content)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, raw string) {
	intent := h.parser.Parse(raw)
	result := h.dispatcher.Dispatch(r.Context(), intent)
	writeJSON(w, http.StatusOK, result)
}

type licenseRequest struct {
	LicenseKey string `json:"license_key"`
}

// validateLicense compares the presented key against the one in effect.
func (h *Handler) validateLicense(w http.ResponseWriter, r *http.Request) {
	var presented string

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		body, err := readAllLimit(r.Body, maxBodyBytes)
		if err != nil {
			writeInvalidPayload(w, r, "unreadable body", nil)
			return
		}
		var doc interface{}
		if err := json.Unmarshal(body, &doc); err != nil {
			writeInvalidPayload(w, r, "invalid json body", nil)
			return
		}
		result, err := validation.ValidateInput(doc, validation.LicenseSchema)
		if err != nil || !result.Valid {
			var details interface{}
			if result != nil {
				details = result.Errors
			}
			writeInvalidPayload(w, r, "license_key is required", details)
			return
		}
		var req licenseRequest
		_ = json.Unmarshal(body, &req)
		presented = req.LicenseKey
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeInvalidPayload(w, r, "invalid form body", nil)
			return
		}
		presented = r.PostFormValue("license_key")
	}

	current := h.service.LicenseKey()
	presented = strings.TrimSpace(presented)
	valid := current != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(current)) == 1
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

type commandInfo struct {
	Name        string   `json:"name"`
	Usage       string   `json:"usage"`
	Description string   `json:"description"`
	Args        []string `json:"args"`
}

func (h *Handler) commands(w http.ResponseWriter, r *http.Request) {
	reg := registry.New(h.parser.Prefix())
	out := make([]commandInfo, 0, len(reg.Commands))
	for _, c := range reg.Commands {
		out = append(out, commandInfo{
			Name:        reg.Prefix + string(c.Kind),
			Usage:       c.Usage(reg.Prefix),
			Description: c.Description,
			Args:        c.Args,
		})
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{
		"version":  reg.Version,
		"commands": out,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.version})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "dependencies unavailable", failed, requestIDFromContext(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
