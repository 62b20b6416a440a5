package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	toolsHandler "voice-bridge/internal/agenttools/handler"
	toolsProcessor "voice-bridge/internal/agenttools/processor"
	kafkaClient "voice-bridge/internal/clients/kafka"
	redisClient "voice-bridge/internal/clients/redis"
	"voice-bridge/internal/clients/stripe"
	"voice-bridge/internal/config"
	"voice-bridge/internal/observability"
	"voice-bridge/internal/ratelimit"
	"voice-bridge/internal/voicecall/agent"
	"voice-bridge/internal/voicecall/bridge"
	"voice-bridge/internal/voicecall/call"
	"voice-bridge/internal/voicecall/directory"
	voiceCallHandler "voice-bridge/internal/voicecall/handler"
	"voice-bridge/internal/voicecall/notify"
	voiceCallProcessor "voice-bridge/internal/voicecall/processor"
	"voice-bridge/internal/voicecall/records"
	"voice-bridge/internal/voicecall/twilio"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const recordCleanupInterval = time.Minute

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger         *observability.Logger
	MetricsHandler http.Handler

	// Handlers
	VoiceCallHandler  voiceCallHandler.Handler
	AgentToolsHandler toolsHandler.Handler
	// Limiters are nil when their route is not rate limited
	OutboundLimiter *ratelimit.Service
	MessageLimiter  *ratelimit.Service

	Bridge *bridge.Bridge

	// Clients and stores (for cleanup)
	MemoryRecords *records.MemoryStore
	RedisClient   *redisClient.Client
	KafkaProducer *kafkaClient.Producer
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observability.RegisterMetrics(registry)
	deps.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	// Retained call records: memory always, Redis when enabled
	deps.MemoryRecords = records.NewMemoryStore(cfg.Calls.RecordTTL, recordCleanupInterval)
	store := records.Layered{deps.MemoryRecords}

	var err error
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if deps.RedisClient != nil {
		store = append(store, records.NewRedisStore(deps.RedisClient, cfg.Calls.RecordTTL))
	}

	// Initialize clients
	var callerDirectory directory.Checker = directory.NewClient(cfg.Directory.CheckURL, cfg.Calls.LookupTimeout, logger)
	if cfg.Directory.CacheTTL > 0 {
		// Inbound calls are looked up by the webhook and again by the media stream
		callerDirectory = directory.NewCachingChecker(callerDirectory, cfg.Directory.CacheTTL)
	}
	agentClient := agent.NewClient(cfg.Agent.APIKey, cfg.Agent.AgentID, cfg.Agent.BaseURL, logger)
	dispatcher := notify.NewDispatcher(notify.Endpoints{
		call.DirectionInbound:  cfg.Notification.InboundURL,
		call.DirectionOutbound: cfg.Notification.OutboundURL,
	}, cfg.Notification.AuthToken, cfg.Notification.AuthScheme, logger)
	callPlacer := twilio.NewCallPlacer(cfg.Telephony.AccountSID, cfg.Telephony.AuthToken, logger)
	messageSender := twilio.NewMessageSender(cfg.Telephony.AccountSID, cfg.Telephony.AuthToken, logger)
	paymentClient := stripe.NewClient(cfg.Payments.LiveKey, cfg.Payments.TestKey, cfg.Payments.RedirectURL, logger)
	if !cfg.Payments.Enabled() {
		logger.Info(ctx, "Stripe keys not configured, payment links are disabled")
	}

	bridgeDeps := bridge.Deps{
		Authorizer: callerDirectory,
		Upstream:   agentClient,
		Notifier:   dispatcher,
		Registry:   bridge.NewMemoryRegistry(),
		Records:    store,
		Logger:     logger,
	}

	// Lifecycle events are only published when brokers are configured
	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		bridgeDeps.Publisher = deps.KafkaProducer
	} else {
		logger.Info(ctx, "Kafka brokers not configured, call events will not be published")
	}

	hangup, err := twilio.HangupMarkup()
	if err != nil {
		deps.Cleanup()
		return nil, err
	}
	reject, err := twilio.RejectMarkup()
	if err != nil {
		deps.Cleanup()
		return nil, err
	}

	deps.Bridge = bridge.New(bridgeDeps, bridge.Options{
		CloseGrace:    cfg.Calls.CloseGrace,
		NotifyTimeout: cfg.Calls.NotifyTimeout,
		LookupTimeout: cfg.Calls.LookupTimeout,
		SaveTimeout:   cfg.Calls.RecordSaveTimeout,
		HangupMarkup:  hangup,
		RejectMarkup:  reject,
	})

	// Initialize voice call processor and handler
	voiceCallProc := voiceCallProcessor.New(callerDirectory, callPlacer, deps.Bridge, store, voiceCallProcessor.Config{
		PublicHost: cfg.Server.PublicHost,
		FromNumber: cfg.Telephony.PhoneNumber,
	}, logger)
	deps.VoiceCallHandler = voiceCallHandler.New(voiceCallProc, logger)

	// Initialize agent tools processor and handler
	toolsProc := toolsProcessor.New(messageSender, paymentClient, toolsProcessor.Config{
		FromNumber: cfg.Telephony.PhoneNumber,
	}, logger)
	deps.AgentToolsHandler = toolsHandler.New(toolsProc, logger)

	if cfg.RateLimit.OutboundPerMinute > 0 {
		deps.OutboundLimiter = ratelimit.NewService(deps.RedisClient, "outbound", cfg.RateLimit.OutboundPerMinute, time.Minute, logger)
	}
	if cfg.RateLimit.MessagesPerMinute > 0 {
		deps.MessageLimiter = ratelimit.NewService(deps.RedisClient, "sms", cfg.RateLimit.MessagesPerMinute, time.Minute, logger)
	}

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if d.MemoryRecords != nil {
		d.MemoryRecords.Stop()
	}
}
