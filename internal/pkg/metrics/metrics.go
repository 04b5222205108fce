package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TransfersTotal    *prometheus.CounterVec
	ScansTotal        *prometheus.CounterVec
	PointsTransferred prometheus.Counter
	PointsScanned     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_transfers_total",
			Help: "Total number of point transfers by result.",
		}, []string{"result"}),
		ScansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_scans_total",
			Help: "Total number of recycling scans by material.",
		}, []string{"material"}),
		PointsTransferred: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewards_points_transferred_total",
			Help: "Total points moved between users.",
		}),
		PointsScanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewards_points_scanned_total",
			Help: "Total points credited from recycling scans.",
		}),
	}
}
