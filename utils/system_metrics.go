package utils

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current host CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_percent",
			Help: "Current host memory usage percentage",
		},
	)
)

// StartSystemMetricsCollector samples host CPU and memory usage on the
// given interval and publishes them as Prometheus gauges.
func StartSystemMetricsCollector(interval time.Duration) {
	go func() {
		for {
			if percentage, err := cpu.Percent(time.Second, false); err != nil {
				log.Printf("Error getting CPU usage: %v", err)
			} else if len(percentage) > 0 {
				SystemCPUUsage.Set(percentage[0])
			}

			if vm, err := mem.VirtualMemory(); err != nil {
				log.Printf("Error getting memory usage: %v", err)
			} else {
				SystemMemoryUsage.Set(vm.UsedPercent)
			}

			time.Sleep(interval)
		}
	}()
}
