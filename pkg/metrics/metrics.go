package metrics

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Metrics holds the ledger's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	FarmersRegistered prometheus.Counter
	DonorsRegistered  prometheus.Counter
	AidRequests       prometheus.Counter
	Disbursements     prometheus.Counter
	FundsDistributed  prometheus.Counter
	FailedOperations  *prometheus.CounterVec
}

// New creates and registers the ledger collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		FarmersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbridge_farmers_registered_total",
			Help: "Number of farmer registrations accepted",
		}),
		DonorsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbridge_donors_registered_total",
			Help: "Number of donor registrations accepted",
		}),
		AidRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbridge_aid_requests_total",
			Help: "Number of aid requests created",
		}),
		Disbursements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbridge_disbursements_total",
			Help: "Number of accepted funding contributions",
		}),
		FundsDistributed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "farmbridge_funds_distributed_ether",
			Help: "Total value distributed to farmers, in ether",
		}),
		FailedOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "farmbridge_failed_operations_total",
			Help: "Number of rejected ledger operations by error code",
		}, []string{"code"}),
	}

	registry.MustRegister(
		m.FarmersRegistered,
		m.DonorsRegistered,
		m.AidRequests,
		m.Disbursements,
		m.FundsDistributed,
		m.FailedOperations,
	)
	return m
}

// AddFundsWei adds a wei amount to the funds-distributed counter, converted
// to ether so the float counter stays within precision.
func (m *Metrics) AddFundsWei(wei *big.Int) {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(1e18),
	).Float64()
	m.FundsDistributed.Add(f)
}

// Handler returns a gin handler serving the registry
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
