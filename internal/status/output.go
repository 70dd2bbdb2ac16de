/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package status

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FormatEnvironmentStatus formats the environment status in a human-readable format
func FormatEnvironmentStatus(env *EnvironmentStatus) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Environment: %s\n", env.Environment))
	output.WriteString("\n")
	writeStackStatus(&output, &env.Directory)
	output.WriteString("\n")
	writeStackStatus(&output, &env.Routing)

	return output.String()
}

func writeStackStatus(output *strings.Builder, stack *StackStatus) {
	output.WriteString(fmt.Sprintf("Stack: %s\n", stack.Name))

	if !stack.Deployed {
		output.WriteString("Status: NOT_DEPLOYED\n")
		return
	}

	output.WriteString(fmt.Sprintf("Status: %s\n", stack.Status))
	if stack.StatusReason != "" {
		output.WriteString(fmt.Sprintf("Reason: %s\n", stack.StatusReason))
	}
	if stack.CreatedTime != nil {
		output.WriteString(fmt.Sprintf("Created: %s\n", formatTime(*stack.CreatedTime)))
	}
	if stack.UpdatedTime != nil {
		output.WriteString(fmt.Sprintf("Updated: %s\n", formatTime(*stack.UpdatedTime)))
	}

	if len(stack.Parameters) > 0 {
		output.WriteString("\nParameters:\n")
		writeKeyValueMap(output, stack.Parameters)
	}
	if len(stack.Outputs) > 0 {
		output.WriteString("\nOutputs:\n")
		writeKeyValueMap(output, stack.Outputs)
	}
	if len(stack.Tags) > 0 {
		output.WriteString("\nTags:\n")
		writeKeyValueMap(output, stack.Tags)
	}
}

// formatTime formats time in a human-readable format
func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}

// writeKeyValueMap writes a sorted map as key-value pairs with indentation
func writeKeyValueMap(output *strings.Builder, m map[string]string) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		output.WriteString(fmt.Sprintf("  %s: %s\n", key, m[key]))
	}
}
