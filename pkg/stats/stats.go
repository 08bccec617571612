package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

const namespace = "tdex_settlement"

// Collector counts the outcome of every exchange operation.
type Collector struct {
	registry     *prometheus.Registry
	fills        *prometheus.CounterVec
	cancels      *prometheus.CounterVec
	epochBumps   prometheus.Counter
	hardFailures *prometheus.CounterVec
}

// NewCollector returns a collector whose metrics are registered on a
// dedicated registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fill_orders_total",
			Help:      "Number of fill order requests by resulting status.",
		}, []string{"status"}),
		cancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancel_orders_total",
			Help:      "Number of cancel order requests by resulting status.",
		}, []string{"status"}),
		epochBumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancel_orders_up_to_total",
			Help:      "Number of maker epoch updates.",
		}),
		hardFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aborted_transitions_total",
			Help:      "Number of transitions aborted by a hard failure.",
		}, []string{"operation"}),
	}
	c.registry.MustRegister(c.fills, c.cancels, c.epochBumps, c.hardFailures)
	return c
}

// Registry returns the registry the collector metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) ObserveFill(status string) {
	c.fills.WithLabelValues(status).Inc()
}

func (c *Collector) ObserveCancel(status string) {
	c.cancels.WithLabelValues(status).Inc()
}

func (c *Collector) ObserveEpochBump() {
	c.epochBumps.Inc()
}

func (c *Collector) ObserveHardFailure(operation string) {
	c.hardFailures.WithLabelValues(operation).Inc()
}

// PrintStatistics logs the current value of every counter.
func (c *Collector) PrintStatistics() {
	families, err := c.registry.Gather()
	if err != nil {
		log.WithError(err).Warn("failed to gather statistics")
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			log.WithFields(labelsToFields(metric.GetLabel())).Infof(
				"%s: %v", family.GetName(), metric.GetCounter().GetValue(),
			)
		}
	}
}

func labelsToFields(labels []*dto.LabelPair) log.Fields {
	fields := log.Fields{}
	for _, l := range labels {
		fields[l.GetName()] = l.GetValue()
	}
	return fields
}
