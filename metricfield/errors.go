package metricfield

import "fmt"

// ConfigurationError rejects a field configuration when it is built. Nothing
// at sample time returns it.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid field configuration: %s: %s", e.Field, e.Reason)
}
