package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthChecker interface {
	Health(ctx context.Context) error
}

type ConnectionChecker interface {
	IsClosed() bool
}

// HealthHandler reports dependency status. A nil dependency means it is not
// configured and does not degrade the service.
type HealthHandler struct {
	DB        Pinger
	Cache     HealthChecker
	RabbitMQ  ConnectionChecker
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, cache HealthChecker, rabbitMQ ConnectionChecker) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Cache:     cache,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)

	if h.DB != nil {
		deps["database"] = healthStatus(h.DB.PingContext(ctx))
	} else {
		deps["database"] = "not configured"
	}

	if h.Cache != nil {
		deps["cache"] = healthStatus(h.Cache.Health(ctx))
	} else {
		deps["cache"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

func healthStatus(err error) string {
	if err != nil {
		return fmt.Sprintf("unhealthy: %v", err)
	}
	return "healthy"
}
