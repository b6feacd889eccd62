package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 5 * time.Second

type dbHealth struct {
	Status      string `json:"status"`
	PingLatency string `json:"ping_latency,omitempty"`
	Error       string `json:"error,omitempty"`
	OpenConns   int32  `json:"open_conns"`
	IdleConns   int32  `json:"idle_conns"`
	InUseConns  int32  `json:"in_use_conns"`
	MaxConns    int32  `json:"max_conns"`
}

// HealthHandler serves the database readiness endpoint. A failed ping yields
// 503 with the error so a load balancer can pull the instance.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		start := time.Now()
		err := pool.Ping(ctx)
		stat := pool.Stat()

		h := dbHealth{
			OpenConns:  stat.TotalConns(),
			IdleConns:  stat.IdleConns(),
			InUseConns: stat.AcquiredConns(),
			MaxConns:   stat.MaxConns(),
		}
		if err != nil {
			h.Status = "unreachable"
			h.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, h)
		}

		h.Status = "ok"
		h.PingLatency = time.Since(start).String()
		return c.JSON(http.StatusOK, h)
	}
}
