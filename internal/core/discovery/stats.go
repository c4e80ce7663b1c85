package discovery

import (
	"math"
	"strings"

	"github.com/valhq/flowscope/internal/core/domain"
	"github.com/valhq/flowscope/internal/core/ports"
)

const bytesPerMb = 1024 * 1024

// ComputeSample converts a paired counter reading into a normalized sample.
// Pure: all guards (first daemon sample, zero limits) resolve to 0.0 rather
// than errors, and every value is rounded to two decimal places.
func ComputeSample(pair ports.CounterPair) domain.ResourceSample {
	curr, prev := pair.Current, pair.Previous

	cpuPercent := 0.0
	cpuDelta := float64(curr.CPUTotal) - float64(prev.CPUTotal)
	systemDelta := float64(curr.SystemUsage) - float64(prev.SystemUsage)
	if cpuDelta > 0 && systemDelta > 0 {
		cpuPercent = (cpuDelta / systemDelta) * float64(curr.OnlineCPUs) * 100
	}

	usageMb := float64(curr.MemoryUsage) / bytesPerMb
	limitMb := float64(curr.MemoryLimit) / bytesPerMb
	memPercent := 0.0
	if limitMb > 0 {
		memPercent = (usageMb / limitMb) * 100
	}

	var rxBytes, txBytes uint64
	for _, iface := range curr.Interfaces {
		rxBytes += iface.RxBytes
		txBytes += iface.TxBytes
	}

	var readBytes, writeBytes uint64
	for _, entry := range curr.BlockIO {
		switch strings.ToLower(entry.Op) {
		case "read":
			readBytes += entry.Bytes
		case "write":
			writeBytes += entry.Bytes
		}
	}

	return domain.ResourceSample{
		CPUPercent:    round2(cpuPercent),
		MemoryUsageMb: round2(usageMb),
		MemoryLimitMb: round2(limitMb),
		MemoryPercent: round2(memPercent),
		NetworkRxMb:   round2(float64(rxBytes) / bytesPerMb),
		NetworkTxMb:   round2(float64(txBytes) / bytesPerMb),
		BlockReadMb:   round2(float64(readBytes) / bytesPerMb),
		BlockWriteMb:  round2(float64(writeBytes) / bytesPerMb),
		PIDs:          curr.PIDs,
	}
}

// round2 rounds half away from zero at the third decimal.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
