package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "searches_total",
		Help: "Total number of natural-language searches",
	}, []string{"outcome"})

	SearchCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_hits_total",
		Help: "Total number of search responses served from cache",
	})

	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Total number of chat assistant requests",
	}, []string{"outcome"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "Latency of external language-model calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "operation"})

	LLMRequestsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_requests_failed_total",
		Help: "Total number of failed language-model calls",
	}, []string{"provider", "reason"})

	CSVFilesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "csv_files_processed_total",
		Help: "Total number of supplier CSV files processed",
	}, []string{"outcome"})

	ProductsUpsertedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "products_upserted_total",
		Help: "Total number of product upserts during ingestion",
	}, []string{"result"})

	CheckoutSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_total",
		Help: "Total number of checkout session attempts",
	}, []string{"outcome"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
