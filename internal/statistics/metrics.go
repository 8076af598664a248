package statistics

import (
	"fmt"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/viper"
	"github.com/ureplay/ureplay/internal/config"
	"github.com/wal-g/tracelog"
)

type metrics struct {
	ParsedReplaysTotal      prometheus.Counter
	FailedReplaysTotal      prometheus.Counter
	LastParseDurationMillis prometheus.Gauge

	ChunkSizeMismatchesTotal *prometheus.CounterVec
	SkippedChunksTotal       *prometheus.CounterVec

	UnknownEventsTotal        *prometheus.CounterVec
	EventHandlerFailuresTotal *prometheus.CounterVec
	UnconsumedEventsTotal     *prometheus.CounterVec

	CheckpointFailuresTotal prometheus.Counter
	DataBlockFailuresTotal  prometheus.Counter
	CorruptDataBlocksTotal  prometheus.Counter
	PacketsTotal            prometheus.Counter
}

var (
	UreplayMetricsPrefix = "ureplay_"

	UreplayMetrics = metrics{
		ParsedReplaysTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "parsed_replays_total",
				Help: "Number of successfully parsed replays.",
			},
		),
		FailedReplaysTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "failed_replays_total",
				Help: "Number of replays rejected with a fatal error.",
			},
		),
		LastParseDurationMillis: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: UreplayMetricsPrefix + "last_parse_duration_ms",
				Help: "Wall time of the last successful parse.",
			},
		),
		ChunkSizeMismatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "chunk_size_mismatches_total",
				Help: "Chunks whose decoder stopped before or after the declared size.",
			},
			[]string{"chunk_type"},
		),
		SkippedChunksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "skipped_chunks_total",
				Help: "Chunks skipped without decoding.",
			},
			[]string{"reason"},
		),
		UnknownEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "unknown_events_total",
				Help: "Events without a registered handler.",
			},
			[]string{"group"},
		),
		EventHandlerFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "event_handler_failures_total",
				Help: "Events whose handler returned an error or panicked.",
			},
			[]string{"group"},
		),
		UnconsumedEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "unconsumed_events_total",
				Help: "Events whose handler left payload bytes unread.",
			},
			[]string{"group"},
		),
		CheckpointFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "checkpoint_failures_total",
				Help: "Checkpoints that failed to decrypt, decompress or decode.",
			},
		),
		DataBlockFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "data_block_failures_total",
				Help: "Data blocks that failed to decrypt, decompress or decode.",
			},
		),
		CorruptDataBlocksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "corrupt_data_blocks_total",
				Help: "Data blocks abandoned at a packet with an impossible size.",
			},
		),
		PacketsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: UreplayMetricsPrefix + "packets_total",
				Help: "Raw packets handed to the packet consumer.",
			},
		),
	}
)

func init() {
	// unregister prometheus collectors
	// https://github.com/prometheus/client_golang/blob/8dfa334295e85f9b1e48ce862fae5f337faa6d2f/prometheus/registry.go#L62-L63
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prometheus.Unregister(collectors.NewGoCollector())

	prometheus.MustRegister(UreplayMetrics.ParsedReplaysTotal)
	prometheus.MustRegister(UreplayMetrics.FailedReplaysTotal)
	prometheus.MustRegister(UreplayMetrics.LastParseDurationMillis)
	prometheus.MustRegister(UreplayMetrics.ChunkSizeMismatchesTotal)
	prometheus.MustRegister(UreplayMetrics.SkippedChunksTotal)
	prometheus.MustRegister(UreplayMetrics.UnknownEventsTotal)
	prometheus.MustRegister(UreplayMetrics.EventHandlerFailuresTotal)
	prometheus.MustRegister(UreplayMetrics.UnconsumedEventsTotal)
	prometheus.MustRegister(UreplayMetrics.CheckpointFailuresTotal)
	prometheus.MustRegister(UreplayMetrics.DataBlockFailuresTotal)
	prometheus.MustRegister(UreplayMetrics.CorruptDataBlocksTotal)
	prometheus.MustRegister(UreplayMetrics.PacketsTotal)
}

func WriteParseResult(duration time.Duration, err error) {
	if err != nil {
		UreplayMetrics.FailedReplaysTotal.Inc()
		return
	}
	UreplayMetrics.ParsedReplaysTotal.Inc()
	UreplayMetrics.LastParseDurationMillis.Set(float64(duration.Milliseconds()))
}

// PushMetrics sends the gathered metrics to statsd when an address is configured.
func PushMetrics() {
	address := viper.GetString(config.StatsdAddressSetting)
	if address == "" {
		return
	}

	extraTags := viper.GetStringMapString(config.StatsdExtraTagsSetting)

	err := pushMetrics(address, extraTags, prometheus.DefaultGatherer)
	if err != nil {
		tracelog.WarningLogger.Printf("Pushing metrics failed: %v", err)
	}
}

func pushMetrics(address string, extraTags map[string]string, gatherer prometheus.Gatherer) error {
	clientConfig := &statsd.ClientConfig{
		Address:       address,
		UseBuffered:   true,
		FlushInterval: 10 * time.Second,
		TagFormat:     statsd.InfixComma,
	}

	client, err := statsd.NewClientWithConfig(clientConfig)
	if err != nil {
		return err
	}
	defer client.Close()

	tracelog.DebugLogger.Printf("Sending metrics to statsd at %s", address)

	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if err := writeMetricFamilyToStatsd(client, family, extraTags); err != nil {
			return err
		}
	}
	return nil
}

func writeMetricFamilyToStatsd(client statsd.Statter, family *dto.MetricFamily, extraTags map[string]string) error {
	name := family.GetName()

	for _, metric := range family.Metric {
		tags := make([]statsd.Tag, 0, len(metric.Label)+len(extraTags))
		for _, label := range metric.Label {
			tags = append(tags, statsd.Tag{label.GetName(), label.GetValue()})
		}
		for k, v := range extraTags {
			tags = append(tags, statsd.Tag{k, v})
		}

		switch family.GetType() {
		case dto.MetricType_COUNTER:
			if metric.Counter == nil {
				return fmt.Errorf("expected counter in metric %s %s", name, metric)
			}
			if err := client.Inc(name, int64(metric.Counter.GetValue()), 1.0, tags...); err != nil {
				return err
			}
		case dto.MetricType_GAUGE:
			if metric.Gauge == nil {
				return fmt.Errorf("expected gauge in metric %s %s", name, metric)
			}
			if err := client.Gauge(name, int64(metric.Gauge.GetValue()), 1.0, tags...); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported type %s in metric %s", family.GetType(), name)
		}
	}
	return nil
}
