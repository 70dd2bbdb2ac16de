/*
Copyright © 2025 Authfront Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// reportStampLayout names report files down to the second so repeated runs
// never overwrite each other.
const reportStampLayout = "20060102-150405"

// Render formats the report for the terminal.
func Render(report *Report, styles *Styles) string {
	var b strings.Builder

	b.WriteString(styles.Header.Render(fmt.Sprintf("Validation report for environment '%s'", report.Environment)))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render(report.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString("\n\n")

	for _, f := range report.Findings {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			styles.statusStyle(f.Status).Render(string(f.Status)),
			styles.Name.Render(f.Name),
			f.Detail))
	}

	pass, warn, fail := report.Counts()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Pass: %d  Warn: %d  Fail: %d\n", pass, warn, fail))

	verdict := report.Verdict()
	if verdict == StatusPass {
		b.WriteString(styles.Pass.Render("✓ Environment is valid"))
	} else {
		b.WriteString(styles.Fail.Render("✗ Environment failed validation"))
	}
	b.WriteString("\n")

	return b.String()
}

// ReportPath returns the file path a report written at the report's own
// timestamp will get.
func ReportPath(outputDir string, report *Report) string {
	name := fmt.Sprintf("validation-report-%s.txt", report.Timestamp.Format(reportStampLayout))
	return filepath.Join(outputDir, name)
}

// WriteReport persists the report as plain text alongside the other run
// artifacts. The file never carries terminal colours.
func WriteReport(outputDir string, report *Report) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	path := ReportPath(outputDir, report)
	content := Render(report, NewStyles(false))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write validation report %s: %w", path, err)
	}
	return path, nil
}
