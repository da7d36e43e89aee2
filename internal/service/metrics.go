package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_fetches_total",
		Help: "Catalog list fetches issued against the backing store",
	})

	catalogStaleDiscardsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_stale_discards_total",
		Help: "Fetch results discarded because a newer fetch superseded them",
	})

	catalogFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_fallbacks_total",
		Help: "Fetches served from the last-known-good snapshot or sample catalog",
	})

	catalogCategoryMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_category_misses_total",
		Help: "Category filters that resolved to no backing-store id",
	})
)
