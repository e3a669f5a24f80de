package utils

import "fmt"

const byteUnitStep = 1024

var byteUnits = [...]string{"KiB", "MiB", "GiB", "TiB"}

// FormatByteCount renders a byte count for humans: "512 B", "1.5 KiB", "3.0 MiB".
func FormatByteCount(count int) string {
	if count < byteUnitStep {
		return fmt.Sprintf("%d B", max(count, 0))
	}
	scaled := float64(count) / byteUnitStep
	unit := 0
	for scaled >= byteUnitStep && unit < len(byteUnits)-1 {
		scaled /= byteUnitStep
		unit++
	}
	return fmt.Sprintf("%.1f %s", scaled, byteUnits[unit])
}
