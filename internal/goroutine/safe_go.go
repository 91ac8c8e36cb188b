package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/logger"
)

// RecoveryHandler перехватывает panic в фоновых горутинах.
type RecoveryHandler struct {
	log logrus.FieldLogger
}

func NewRecoveryHandler(log logrus.FieldLogger) *RecoveryHandler {
	return &RecoveryHandler{log: log}
}

// Go запускает fn в горутине, panic логируется вместе со стеком.
func (rh *RecoveryHandler) Go(name string, fn func()) {
	go func() {
		defer rh.recover(name)
		fn()
	}()
}

// GoWithContext то же, что Go, но передаёт ctx в fn.
func (rh *RecoveryHandler) GoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer rh.recover(name)
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover(name string) {
	if r := recover(); r != nil {
		rh.logger().WithFields(logrus.Fields{
			"goroutine": name,
			"panic":     r,
			"stack":     string(debug.Stack()),
		}).Error("goroutine: panic перехвачен")
	}
}

func (rh *RecoveryHandler) logger() logrus.FieldLogger {
	if rh.log != nil {
		return rh.log
	}
	return logger.Log
}

// Default обработчик поверх глобального логгера.
var Default = NewRecoveryHandler(nil)

// SafeGo запускает fn через Default.
func SafeGo(name string, fn func()) {
	Default.Go(name, fn)
}

// SafeGoWithContext запускает fn с контекстом через Default.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	Default.GoWithContext(ctx, name, fn)
}
