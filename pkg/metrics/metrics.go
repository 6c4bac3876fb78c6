package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del motor de inventario (registro global de prometheus).
var (
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "inventory",
		Name:      "stock_movements_total",
		Help:      "Movimientos de stock registrados, por tipo.",
	}, []string{"type"})

	ZeroStockWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "inventory",
		Name:      "zero_stock_warnings_total",
		Help:      "Avisos emitidos cuando un producto llega a stock cero.",
	})
)
