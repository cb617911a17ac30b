package progress

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports tracker state to Prometheus. Values are read from the
// counters at scrape time.
type Collector struct {
	trackers []*Tracker

	total    *prometheus.Desc
	answered *prometheus.Desc
	ratio    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(trackers ...*Tracker) *Collector {
	labels := []string{"tracker"}
	return &Collector{
		trackers: trackers,
		total: prometheus.NewDesc(
			"quiz_progress_total_questions",
			"Number of questions in the tracked quiz.",
			labels, nil,
		),
		answered: prometheus.NewDesc(
			"quiz_progress_answered_questions",
			"Number of questions answered so far.",
			labels, nil,
		),
		ratio: prometheus.NewDesc(
			"quiz_progress_ratio",
			"Answered fraction between 0 and 1; 0 when the quiz is empty.",
			labels, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.answered
	ch <- c.ratio
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, t := range c.trackers {
		s := t.Snapshot()
		id := t.ID().String()
		ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.Total), id)
		ch <- prometheus.MustNewConstMetric(c.answered, prometheus.GaugeValue, float64(s.Answered), id)
		ch <- prometheus.MustNewConstMetric(c.ratio, prometheus.GaugeValue, Ratio(s), id)
	}
}

// Ratio is answered/total, or 0 for an empty quiz.
func Ratio(s Snapshot) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Answered) / float64(s.Total)
}
