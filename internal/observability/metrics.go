package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	callsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_calls_started_total",
			Help: "Calls that reached the bridged state",
		},
		[]string{"direction"},
	)

	callsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "voice_bridge_calls_active",
			Help: "Calls currently registered with the bridge",
		},
		[]string{"direction"},
	)

	callsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_calls_rejected_total",
			Help: "Calls refused by the caller directory",
		},
		[]string{"direction"},
	)

	teardowns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_teardowns_total",
			Help: "Teardown sequences executed, by trigger",
		},
		[]string{"direction", "reason"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_notifications_total",
			Help: "Call-summary webhook deliveries",
		},
		[]string{"result"},
	)

	upstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_upstream_failures_total",
			Help: "Failed attempts to open the agent socket",
		},
		[]string{"direction"},
	)

	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_frame_decode_errors_total",
			Help: "Frames discarded because they could not be decoded",
		},
		[]string{"source"},
	)

	audioFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_bridge_audio_frames_total",
			Help: "Audio frames forwarded between the two legs",
		},
		[]string{"path"},
	)
)

// RegisterMetrics registers the bridge collectors with r.
func RegisterMetrics(r prometheus.Registerer) {
	r.MustRegister(callsStarted, callsActive, callsRejected, teardowns,
		notifications, upstreamFailures, decodeErrors, audioFrames)
}

// CallStarted counts a registered call and raises the active gauge.
func CallStarted(direction string) {
	callsStarted.WithLabelValues(direction).Inc()
	callsActive.WithLabelValues(direction).Inc()
}

// CallEnded lowers the active gauge.
func CallEnded(direction string) {
	callsActive.WithLabelValues(direction).Dec()
}

func CallRejected(direction string) { callsRejected.WithLabelValues(direction).Inc() }

func Teardown(direction, reason string) { teardowns.WithLabelValues(direction, reason).Inc() }

// NotificationResult records a webhook delivery; success=false marks a DeliveryError.
func NotificationResult(success bool) {
	result := "success"
	if !success {
		result = "failed"
	}
	notifications.WithLabelValues(result).Inc()
}

func UpstreamFailure(direction string) { upstreamFailures.WithLabelValues(direction).Inc() }

func DecodeError(source string) { decodeErrors.WithLabelValues(source).Inc() }

// AudioForwarded counts one audio frame on path ("to_agent" or "to_telephony").
func AudioForwarded(path string) { audioFrames.WithLabelValues(path).Inc() }
