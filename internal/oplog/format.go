package oplog

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/farxc/oplog/internal/logger"
)

// ANSI color codes, one per level.
const (
	colorReset  = "\x1b[0m"
	colorWhite  = "\x1b[37m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorRed    = "\x1b[31m"
)

var levelColors = map[logger.LogLevel]string{
	logger.LevelDebug: colorWhite,
	logger.LevelInfo:  colorGreen,
	logger.LevelWarn:  colorYellow,
	logger.LevelError: colorRed,
}

// Entry is one logged invocation with its values already rendered as text.
type Entry struct {
	Level     logger.LogLevel
	Request   string
	Owner     string
	Method    string
	Args      []string
	Result    string
	ElapsedMs *float64
	LoggedAt  time.Time
}

// Format renders the uncolored line:
//
//	100.02ms: /?name=test :: MyController.hello(test) => Hi test
func Format(e Entry) string {
	var b strings.Builder
	if e.ElapsedMs != nil {
		b.WriteString(FormatMs(*e.ElapsedMs))
		b.WriteString("ms: ")
	}
	b.WriteString(e.Request)
	b.WriteString(" :: ")
	b.WriteString(e.Owner)
	b.WriteByte('.')
	b.WriteString(e.Method)
	b.WriteByte('(')
	b.WriteString(strings.Join(e.Args, ", "))
	b.WriteString(") => ")
	b.WriteString(e.Result)
	return b.String()
}

// Colorize wraps body in the level's color and prefixes its label.
// OFF has no color and yields an empty string.
func Colorize(level logger.LogLevel, body string) string {
	color, ok := levelColors[level]
	if !ok {
		return ""
	}
	return color + " " + level.String() + ": " + body + " " + colorReset
}

// FormatMs rounds to two decimals and drops trailing zeros.
func FormatMs(ms float64) string {
	return strconv.FormatFloat(roundMs(ms), 'f', -1, 64)
}

func roundMs(ms float64) float64 {
	return math.Round(ms*100) / 100
}

// RenderArgs renders each argument with its plain textual form.
func RenderArgs(args []any) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = fmt.Sprint(arg)
	}
	return out
}

// RenderResult renders composite values as JSON and everything else as
// plain text. Errors render as their message.
func RenderResult(result any) string {
	if result == nil {
		return "null"
	}
	if err, ok := result.(error); ok {
		return err.Error()
	}
	if !isComposite(reflect.ValueOf(result)) {
		return fmt.Sprint(result)
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%+v", result)
	}
	return string(data)
}

func isComposite(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}
