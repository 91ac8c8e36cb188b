package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	// Логгер по умолчанию, чтобы пакеты могли писать до Init (например, в тестах).
	Log = logrus.New()
	Log.SetLevel(logrus.InfoLevel)
}

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// SetOutput перенаправляет вывод логов.
func SetOutput(w io.Writer) {
	if Log != nil {
		Log.SetOutput(w)
	}
}

// Op возвращает запись лога с именем операции.
func Op(op string) *logrus.Entry {
	return Log.WithField("op", op)
}
