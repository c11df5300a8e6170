package commands

import (
	"fmt"
	"time"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintStageHeader prints a formatted banner for a pipeline stage run.
func PrintStageHeader(stage string, paramsPath string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", stage)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Params    : %s\n", paramsPath)
	fmt.Printf("  Started   : %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintStageCompletion prints a stage completion message
func PrintStageCompletion(stage string, duration time.Duration) {
	fmt.Println()
	fmt.Printf("✅ %s completed in %.2fs\n", stage, duration.Seconds())
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}
