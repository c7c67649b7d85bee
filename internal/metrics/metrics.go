// Package metrics exposes the portal's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SpreadsheetSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcn_spreadsheet_searches_total",
		Help: "Total number of penalty searches served from the lookup workbook.",
	})

	RowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcn_rows_ingested_total",
		Help: "Total number of workbook rows upserted into the record store.",
	})

	RowErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcn_row_errors_total",
		Help: "Total number of workbook rows rejected, labelled by reason.",
	}, []string{"reason"})

	FilesIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcn_files_ingested_total",
		Help: "Total number of workbooks processed, labelled by outcome.",
	}, []string{"status"})
)
