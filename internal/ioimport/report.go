package ioimport

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteFailures saves the failures of the summary to a YAML file at path.
// Nothing is written when there are no failures.
func WriteFailures(path string, sum *Summary) error {
	if sum == nil || len(sum.Failures) == 0 {
		return nil
	}

	data, err := yaml.Marshal(sum)
	if err != nil {
		return FailuresReportError(path, err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return FailuresReportError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return FailuresReportError(path, err)
	}
	return nil
}
