package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger define a interface para logging estruturado.
// Handlers, serviços e repositórios dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// LogEntry define a estrutura de uma linha de log em JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

// JSONLogger escreve uma entrada JSON por linha.
type JSONLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel int
	exit     func(int)
}

// NewLogger cria um Logger que escreve em stdout.
func NewLogger(level string) Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter permite direcionar a saída (útil em testes).
func NewWithWriter(level string, out io.Writer) *JSONLogger {
	min, ok := levels[strings.ToLower(level)]
	if !ok {
		min = levels["info"]
	}
	return &JSONLogger{out: out, minLevel: min, exit: os.Exit}
}

// NewNop devolve um Logger que descarta tudo.
func NewNop() Logger {
	return NewWithWriter("fatal", io.Discard)
}

func (l *JSONLogger) write(level, msg string, fields map[string]interface{}, err error) {
	if levels[level] < l.minLevel {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     strings.ToUpper(level),
		Message:   msg,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	line, _ := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields map[string]interface{}) {
	l.write("debug", msg, fields, nil)
}

func (l *JSONLogger) Info(msg string, fields map[string]interface{}) {
	l.write("info", msg, fields, nil)
}

func (l *JSONLogger) Warn(msg string, fields map[string]interface{}) {
	l.write("warn", msg, fields, nil)
}

func (l *JSONLogger) Error(msg string, err error) {
	l.write("error", msg, nil, err)
}

// Fatal registra e encerra o processo.
func (l *JSONLogger) Fatal(msg string, err error) {
	l.write("fatal", msg, nil, err)
	l.exit(1)
}
