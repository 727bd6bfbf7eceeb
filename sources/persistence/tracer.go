package persistence

import "chokwadi/sources/tracing"

type gormtracer struct {
	logger *tracing.Logger
}

func (w *gormtracer) Printf(format string, args ...interface{}) {
	w.logger.D(format, args...)
}
