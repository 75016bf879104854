package logger

import "fmt"

// StepFormat prefixes message with its position in a sequence of total steps.
// Out-of-range positions return the message unchanged.
func StepFormat(step, total int, message string) string {
	if step < 1 || total < 1 || step > total {
		return message
	}
	return fmt.Sprintf("Step %d/%d: %s", step, total, message)
}
