package main

import (
	"fmt"
	"log/slog"

	"geo-users/internal/config"

	"github.com/grafana/pyroscope-go"
)

// startProfiling pushes continuous profiles to PYROSCOPE_SERVER_ADDRESS.
// The returned stop func is always safe to call.
func startProfiling(cfg config.Config, log *slog.Logger) (func(), error) {
	if cfg.PyroscopeServerAddr == "" {
		return func() {}, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: "geo-users",
		ServerAddress:   cfg.PyroscopeServerAddr,
		Tags:            map[string]string{"port": fmt.Sprint(cfg.AppPort)},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}
	log.Info("continuous profiling enabled", "server", cfg.PyroscopeServerAddr)

	return func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("profiler stop", "err", err)
		}
	}, nil
}
