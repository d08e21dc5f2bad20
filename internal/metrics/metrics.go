package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Commands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "photoapp",
		Name:      "commands_total",
		Help:      "Commands dispatched by the command loop.",
	}, []string{"command"})
	CommandFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "photoapp",
		Name:      "command_failures_total",
		Help:      "Commands that ended in an error, by error kind.",
	}, []string{"command", "kind"})
	BytesUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "photoapp",
		Name:      "bytes_uploaded_total",
		Help:      "Bytes of local files uploaded to the object store.",
	})
	BytesDownloaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "photoapp",
		Name:      "bytes_downloaded_total",
		Help:      "Bytes of objects downloaded from the object store.",
	})
	Reconciled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "photoapp",
		Name:      "reconciled_intents_total",
		Help:      "Upload intents settled by the reconciliation sweep, by outcome.",
	}, []string{"outcome"})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(Commands, CommandFailures, BytesUploaded, BytesDownloaded, Reconciled)
}

// Serve starts a /metrics server on the given addr (e.g., ":9090"). Blocks; run in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
