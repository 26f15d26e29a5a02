// internal/workers/lookup/dispatch-lookup/handler.go
package dispatchlookup

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"lookup-relay/internal/common/cache"
	commonerrors "lookup-relay/internal/common/errors"
	commonhttp "lookup-relay/internal/common/http"
	"lookup-relay/internal/common/logger"
	"lookup-relay/internal/common/metrics"
	"lookup-relay/internal/common/observability"
	"lookup-relay/internal/models"
	"lookup-relay/pkg/registry"
)

const (
	TaskType = "dispatch-lookup"
)

// Handler turns intents into upstream calls. It is safe for concurrent use; the license key
// in the service config is the only state shared between dispatches.
type Handler struct {
	config   *Config
	service  *models.ServiceConfig
	client   *commonhttp.Client
	notifier Notifier
	cache    cache.LookupCache
	obs      *observability.Observability
	validate *validator.Validate
	logger   logger.Logger
}

type Option func(*Handler)

// WithClient replaces the upstream HTTP client, e.g. to inject a fake sleep.
func WithClient(client *commonhttp.Client) Option {
	return func(h *Handler) { h.client = client }
}

// WithCache enables caching of successful lookup payloads. Balance is never cached.
func WithCache(c cache.LookupCache) Option {
	return func(h *Handler) { h.cache = c }
}

func WithObservability(obs *observability.Observability) Option {
	return func(h *Handler) { h.obs = obs }
}

func NewHandler(config *Config, service *models.ServiceConfig, notifier Notifier, log logger.Logger, opts ...Option) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Prefix == "" {
		config.Prefix = "/"
	}

	h := &Handler{
		config:   config,
		service:  service,
		notifier: notifier,
		obs:      observability.NewNoop(),
		validate: newValidator(),
		logger:   log.With(map[string]interface{}{"taskType": TaskType}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.client == nil {
		h.client = commonhttp.NewClient(config.AttemptTimeout, config.Policy())
	}
	return h
}

// phonePattern accepts the usual ways of writing a number: 555-123-4567, (555)1234567,
// +1 555.123.4567.
var phonePattern = regexp.MustCompile(`^\+?[0-9().\- ]*[0-9][0-9().\- ]*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Dispatch executes intent and returns its result. Every call, successful or not, submits
// exactly one notification; its delivery is never awaited.
func (h *Handler) Dispatch(ctx context.Context, intent models.Intent) models.LookupResult {
	start := time.Now()
	kind := models.KindUnknown
	if intent != nil {
		kind = intent.Kind()
	}

	ctx, span := h.obs.StartSpan(ctx, "dispatch "+string(kind), attribute.String("command", string(kind)))
	defer span.End()

	result := h.execute(ctx, intent)

	outcome := metrics.OutcomeSuccess
	if !result.Success {
		outcome = metrics.OutcomeFailure
		span.SetStatus(codes.Error, result.ErrorCode)
		metrics.CommandErrors.WithLabelValues(string(kind), result.ErrorCode).Inc()
	}
	duration := time.Since(start)
	metrics.CommandsDispatched.WithLabelValues(string(kind), outcome).Inc()
	metrics.DispatchDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
	h.obs.RecordDispatch(ctx, string(kind), outcome, duration)

	h.logger.Info("command dispatched", map[string]interface{}{
		"command":   kind,
		"success":   result.Success,
		"errorCode": result.ErrorCode,
		"duration":  duration.Milliseconds(),
	})

	h.notify(result)
	return result
}

func (h *Handler) execute(ctx context.Context, intent models.Intent) models.LookupResult {
	switch i := intent.(type) {
	case models.BalanceIntent:
		return h.lookup(ctx, i, nil)
	case models.EmailLookupIntent:
		return h.lookup(ctx, i, []string{i.Email})
	case models.SSNLookupIntent:
		return h.lookup(ctx, i, []string{i.FirstName, i.LastName, i.DOB})
	case models.PhoneLookupIntent:
		return h.lookup(ctx, i, []string{i.Phone})
	case models.IPLookupIntent:
		return h.lookup(ctx, i, []string{i.IP})
	case models.DomainLookupIntent:
		return h.lookup(ctx, i, []string{i.Domain})
	case models.BINLookupIntent:
		return h.lookup(ctx, i, []string{i.BIN})
	case models.SetLicenseIntent:
		return h.setLicense(i)
	case models.UsageErrorIntent:
		return failure(commonerrors.NewUsageError(i.Usage), i.Usage)
	case models.UnknownIntent:
		help := registry.Help(h.config.Prefix)
		return failure(commonerrors.NewUnknownCommandError(help, i.Raw), help)
	default:
		h.logger.Error("unhandled intent", map[string]interface{}{"intent": intent})
		return failure(commonerrors.AsStandard(errors.New("unhandled intent")), commonerrors.MsgInternal)
	}
}

// lookup performs one upstream command. The license key read guard is held from the credential
// check until the response is decoded.
func (h *Handler) lookup(ctx context.Context, intent models.Intent, args []string) models.LookupResult {
	cmd := registry.MustLookup(intent.Kind())

	var result models.LookupResult
	h.service.WithLicenseKey(func(licenseKey string) {
		if cmd.RequiresLicense && licenseKey == "" {
			result = failure(commonerrors.NewMissingCredentialError(), msgLicenseRequired)
			return
		}

		if err := h.validate.Struct(intent); err != nil {
			stdErr := commonerrors.NewInvalidArgumentError(cmd.Usage(h.config.Prefix), invalidField(err))
			result = failure(stdErr, stdErr.Message)
			return
		}

		var cacheKey string
		if h.cache != nil && intent.Kind() != models.KindBalance {
			cacheKey = cache.Key(string(intent.Kind()), args...)
			if payload, ok := h.cachedPayload(ctx, cacheKey); ok {
				result = success(payload, successMessage(intent.Kind(), args, payload))
				return
			}
		}

		rawURL, err := buildURL(h.service.BaseURL(), cmd, args, licenseKey)
		if err != nil {
			h.logger.Error("failed to build upstream url", map[string]interface{}{
				"command": cmd.Kind,
				"error":   err.Error(),
			})
			result = failure(commonerrors.AsStandard(err), commonerrors.MsgInternal)
			return
		}

		header := http.Header{}
		if key := h.service.APIKey(); key != "" {
			header.Set(APIKeyHeader, key)
		}

		payload, attempts, err := h.client.GetJSON(ctx, rawURL, header, func(attempt int, err error) {
			metrics.UpstreamAttempts.WithLabelValues(string(cmd.Kind), metrics.OutcomeFailure).Inc()
			h.logger.Warn("upstream attempt failed", map[string]interface{}{
				"command": cmd.Kind,
				"attempt": attempt,
				"url":     commonhttp.Redact(rawURL),
				"error":   err.Error(),
			})
		})
		if err != nil {
			stdErr := commonerrors.AsStandard(err)
			h.logger.Error("upstream request failed", map[string]interface{}{
				"command":   cmd.Kind,
				"attempts":  attempts,
				"errorCode": stdErr.Code,
				"details":   stdErr.Details,
			})
			result = failure(stdErr, failureMessage(cmd.Kind, stdErr.Message))
			return
		}
		metrics.UpstreamAttempts.WithLabelValues(string(cmd.Kind), metrics.OutcomeSuccess).Inc()

		if cacheKey != "" {
			if err := h.cache.Set(ctx, cacheKey, payload); err != nil {
				h.logger.Warn("failed to cache lookup", map[string]interface{}{"error": err.Error()})
			}
		}
		result = success(payload, successMessage(cmd.Kind, args, payload))
	})
	return result
}

func (h *Handler) cachedPayload(ctx context.Context, key string) (interface{}, bool) {
	payload, found, err := h.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("lookup cache read failed", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	if !found {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return payload, true
}

func (h *Handler) setLicense(intent models.SetLicenseIntent) models.LookupResult {
	key := strings.TrimSpace(intent.Key)
	if key == "" {
		usage := registry.MustLookup(models.KindSetLicense).Usage(h.config.Prefix)
		return failure(commonerrors.NewUsageError(commonerrors.MsgLicenseKeyEmpty), usage)
	}

	h.service.SetLicenseKey(key)
	h.logger.Info("license key updated", nil)
	return success(map[string]interface{}{"licenseKey": key}, msgSetLicensePrefix+key)
}

func (h *Handler) notify(result models.LookupResult) {
	if h.notifier == nil {
		return
	}
	color := models.ColorSuccess
	if !result.Success {
		color = models.ColorFailure
	}
	h.notifier.Notify(models.NotificationEvent{
		ID:          uuid.New().String(),
		Title:       NotificationTitle,
		Description: result.Message,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	})
}

func success(payload interface{}, message string) models.LookupResult {
	return models.LookupResult{
		Success: true,
		Payload: payload,
		Message: message,
	}
}

func failure(err *commonerrors.StandardError, message string) models.LookupResult {
	return models.LookupResult{
		Success:      false,
		ErrorMessage: err.Message,
		ErrorCode:    string(err.Code),
		Message:      message,
	}
}

func invalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return "arguments"
}
