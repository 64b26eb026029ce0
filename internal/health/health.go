package health

import (
	"context"
	"runtime"
	"time"

	"inmobiliaria-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// DBPinger is optional. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

type Result struct {
	Status       string               `json:"status"`
	GoVersion    string               `json:"goVersion"`
	Platform     string               `json:"platform"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

// Collect pings the database and Redis and reports their status.
func Collect(ctx context.Context, db DBPinger, rdb *redis.Client) Result {
	result := Result{
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + " (" + runtime.GOARCH + ")",
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	if dbStatus == "connected" && redisStatus != "error" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

type Handlers struct {
	DB  DBPinger
	Rdb *redis.Client
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := Collect(c.Context(), h.DB, h.Rdb)
	return response.Success(c, "Health collected", result, nil)
}
