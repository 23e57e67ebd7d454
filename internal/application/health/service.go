package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"estate-backend/internal/domain"
	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional. A nil pinger reports the ledger as disconnected.
type DBPinger interface {
	Ping() error
}

// Sources are the dependencies inspected by CollectHealth. Any may be nil.
type Sources struct {
	Redis *redis.Client
	DB    DBPinger
	Store *memstore.Store
}

type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Inventory    InventoryInfo        `json:"inventory"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	AllocMB   int `json:"allocMb"`
	HeapInUse int `json:"heapInUseMb"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

// InventoryInfo summarizes the in-memory catalog.
type InventoryInfo struct {
	Properties      int `json:"properties"`
	SoldOut         int `json:"soldOut"`
	AvailableShares int `json:"availableShares"`
	Owners          int `json:"owners"`
	Groups          int `json:"groups"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// CollectHealth gathers dependency status, request counters from Redis and a
// catalog summary. Status is "ok" when both Redis and the ledger database answer.
func CollectHealth(ctx context.Context, src Sources) CollectResult {
	result := CollectResult{Dependencies: make(map[string]DepStatus)}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if src.DB != nil {
		start := time.Now()
		if err := src.DB.Ping(); err == nil {
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
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	startTimeMs := time.Now().UnixMilli()

	if rdb := src.Redis; rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
			startTimeMs = readTraffic(ctx, rdb, &stats, startTimeMs)
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}
	result.Traffic = stats

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{AllocMB: int(m.Alloc / 1024 / 1024), HeapInUse: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if src.Store != nil {
		result.Inventory = inventory(src.Store)
	}

	if dbStatus == "connected" && redisStatus == "connected" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

func readTraffic(ctx context.Context, rdb *redis.Client, stats *TrafficInfo, startTimeMs int64) int64 {
	totalReq, _ := rdb.Get(ctx, middleware.KeyReqTotal).Result()
	totalErr, _ := rdb.Get(ctx, middleware.KeyReqErrors).Result()
	totalTime, _ := rdb.Get(ctx, middleware.KeyResTime).Result()
	resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Result()
	startTimeStr, _ := rdb.Get(ctx, middleware.KeyStartTime).Result()
	lastReqStr, _ := rdb.Get(ctx, middleware.KeyLastReq).Result()

	if startTimeStr != "" {
		if t, err := strconv.ParseInt(startTimeStr, 10, 64); err == nil {
			startTimeMs = t
		}
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, startTimeMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(totalReq)
	stats.FailedCount, _ = strconv.Atoi(totalErr)
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(totalTime, 64)
	countSum, _ := strconv.Atoi(resCount)
	if countSum > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
	}
	if lastReqStr != "" {
		var lastReq map[string]interface{}
		_ = json.Unmarshal([]byte(lastReqStr), &lastReq)
		stats.LastRequest = lastReq
	}
	return startTimeMs
}

func inventory(store *memstore.Store) InventoryInfo {
	var info InventoryInfo
	_ = store.View(func(r memstore.Reader) error {
		for _, p := range r.Properties() {
			info.Properties++
			if p.Status() == domain.StatusSoldOut {
				info.SoldOut++
			}
			info.AvailableShares += p.AvailableShares
		}
		info.Owners = len(r.Owners())
		info.Groups = len(r.Groups())
		return nil
	})
	return info
}
