package publishers

// Logger is the subset of the structured logger publishers write to.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type discardLogger struct{}

func (discardLogger) DebugObj(string, string, interface{}) {}
func (discardLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return discardLogger{}
	}
	return log
}
