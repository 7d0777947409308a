package workers

import (
	"chat-relay/domain"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

type StatsSource interface {
	Stats() domain.RelayStats
}

// HeartbeatWorker periodically logs relay counters next to the process
// footprint (RSS, CPU, OS status).
type HeartbeatWorker struct {
	log      *slog.Logger
	source   StatsSource
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, source StatsSource, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, source: source, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.beat(p)
		}
	}
}

func (w *HeartbeatWorker) beat(p *process.Process) {
	stats := w.source.Stats()
	attrs := []any{
		"sessions", stats.Sessions,
		"customers", stats.Roles[domain.RoleCustomer],
		"support", stats.Roles[domain.RoleSupport],
		"connections", stats.Connections,
		"topics", len(stats.Topics),
		"history", stats.History,
	}

	rss, cpu, status, err := selfStats(p)
	if err != nil {
		w.log.Warn("Failed to collect self stats", "error", err)
	} else {
		attrs = append(attrs, "rss_bytes", rss, "cpu_percent", cpu, "status", status)
	}
	w.log.Info("Heartbeat", attrs...)
}

func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
