package ide

import "github.com/prometheus/client_golang/prometheus"

// Dispatcher activity counters, grounded on go-tcg-storage's
// cmd/tcgdiskstat/metric.go use of prometheus.NewDesc/MustNewConstMetric
// (DESIGN.md). These describe command throughput and error rates, not
// drive health telemetry — SMART remains out of scope (spec.md Non-goals).
var (
	commandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ide_commands_total",
		Help: "ATA/ATAPI commands dispatched, by channel and command opcode.",
	}, []string{"channel", "cmd"})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ide_errors_total",
		Help: "Command failures published to the host, by channel and error kind.",
	}, []string{"channel", "kind"})

	packetCommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ide_packet_commands_total",
		Help: "ATAPI packet commands dispatched, by channel and packet opcode.",
	}, []string{"channel", "opcode"})
)

func init() {
	prometheus.MustRegister(commandsTotal, errorsTotal, packetCommandsTotal)
}
