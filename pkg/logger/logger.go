package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	DEBUG: 0,
	INFO:  1,
	WARN:  2,
	ERROR: 3,
}

type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	json    bool
	out     io.Writer
	context map[string]string
}

var (
	global *Logger
	once   sync.Once
)

// Init configures the process-wide logger. out may be nil, in which case
// output goes to stdout.
func Init(level LogLevel, jsonFormat bool, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if _, ok := levelRank[level]; !ok {
		level = INFO
	}
	global = &Logger{
		level:   level,
		json:    jsonFormat,
		out:     out,
		context: map[string]string{},
	}
}

func GetLogger() *Logger {
	once.Do(func() {
		if global == nil {
			Init(INFO, false, os.Stdout)
		}
	})
	return global
}

// WithContext returns a logger that carries an extra key/value pair on every
// entry, e.g. the component name.
func (l *Logger) WithContext(key, value string) *Logger {
	ctx := make(map[string]string, len(l.context)+1)
	for k, v := range l.context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Logger{
		level:   l.level,
		json:    l.json,
		out:     l.out,
		context: ctx,
	}
}

func (l *Logger) Debug(event string, kv ...string) { l.log(DEBUG, event, kv) }
func (l *Logger) Info(event string, kv ...string)  { l.log(INFO, event, kv) }
func (l *Logger) Warn(event string, kv ...string)  { l.log(WARN, event, kv) }
func (l *Logger) Error(event string, kv ...string) { l.log(ERROR, event, kv) }

func (l *Logger) log(level LogLevel, event string, kv []string) {
	if levelRank[level] < levelRank[l.level] {
		return
	}

	ts := time.Now().UTC().Format(time.RFC3339)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json {
		entry := map[string]string{
			"ts":    ts,
			"level": string(level),
			"event": event,
		}
		for k, v := range l.context {
			entry[k] = v
		}
		for i := 0; i+1 < len(kv); i += 2 {
			entry[kv[i]] = kv[i+1]
		}
		b, err := json.Marshal(entry)
		if err != nil {
			return
		}
		fmt.Fprintln(l.out, string(b))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s", ts, level, event)
	for k, v := range l.context {
		fmt.Fprintf(&sb, " %s=%s", k, v)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&sb, " %s=%s", kv[i], kv[i+1])
	}
	fmt.Fprintln(l.out, sb.String())
}
