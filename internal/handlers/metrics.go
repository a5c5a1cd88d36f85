package handlers

import (
	"strconv"
	"strings"

	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/prom"
)

// MetricsMiddleware counts finished requests by method and status.
// Probe endpoints stay out of the counters.
func MetricsMiddleware(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		next(ctx)
		path := string(ctx.Path())
		if strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/metrics") {
			return
		}
		prom.IncCounterVec(prom.SystemHTTP, prom.MetricHTTPRequestsTotal,
			string(ctx.Method()), strconv.Itoa(ctx.Response.StatusCode()))
	}
}
