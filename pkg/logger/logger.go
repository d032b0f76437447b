package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger del API.
type Config struct {
	Service string // nombre del servicio, va como campo fijo en cada línea
	Env     string // development -> consola legible; otro valor -> JSON
	Level   string // trace, debug, info, warn, error (inválido = info)
}

// Logger wrapper sobre zerolog con el contexto del servicio ya aplicado.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger estructurado del servicio. Cada línea lleva timestamp
// y el campo service, de modo que los logs de varias instancias o servicios
// agregados sean distinguibles sin configuración extra.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	l := newWithWriter(w, cfg)

	// Las librerías que usan el logger global de zerolog heredan el contexto.
	log.Logger = l.zl

	return l
}

func newWithWriter(w io.Writer, cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()

	return &Logger{zl: zl}
}

// Component deriva un sublogger con el campo component fijo, para etiquetar
// los logs de un subsistema (migraciones, email, http).
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
