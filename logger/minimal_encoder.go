package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Everforest-ish palette, 256-color escapes
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorTime   = "\x1b[38;5;107m"
	colorFg     = "\x1b[38;5;223m"
	colorGreen  = "\x1b[38;5;108m"
	colorDeep   = "\x1b[38;5;65m"
	colorOrange = "\x1b[38;5;208m"
	colorAqua   = "\x1b[38;5;109m"
	colorYellow = "\x1b[38;5;179m"
	colorRed    = "\x1b[38;5;167m"
	colorRedBg  = "\x1b[48;5;52m"
	colorYelBg  = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder is a compact console encoder:
//
//	13:04:35  replay  Replayed session  lib/a.rb 3 responses 4ms  batch=2
//
// Context fields added through With accumulate in the embedded map encoder.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder(), color: color}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(colorTime, ent.Time.Format("15:04:05")))

	if lvl := enc.levelString(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(componentColor(ent.LoggerName), abbreviateName(ent.LoggerName)))
	}

	final.AppendString("  ")
	final.AppendString(enc.paint(colorFg, ent.Message))

	if rendered := enc.renderFields(fields); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return enc.paint(colorDeep, "DEBUG")
	case zapcore.InfoLevel:
		return ""
	case zapcore.WarnLevel:
		return enc.paint(colorBold+colorYelBg+colorYellow, "WARN")
	default:
		return enc.paint(colorBold+colorRedBg+colorRed, level.CapitalString())
	}
}

// componentColor hashes the name so a component keeps its color across lines.
func componentColor(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	switch hash % 3 {
	case 0:
		return colorGreen
	case 1:
		return colorDeep
	}
	return colorOrange
}

// abbreviateName shortens component names: replay.collector -> r.collector
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// renderFields never drops a field: known keys render inline, the rest as key=value
// in sorted order.
func (enc *minimalEncoder) renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 && len(enc.Fields) == 0 {
		return ""
	}
	m := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		m.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(m)
	}

	var inline []string
	take := func(key, color, suffix string) {
		v, ok := m.Fields[key]
		if !ok {
			return
		}
		delete(m.Fields, key)
		inline = append(inline, enc.paint(color, fmt.Sprint(v))+suffix)
	}
	take(FieldSession, colorAqua, "")
	take(FieldFile, colorAqua, "")
	take(FieldKind, colorGreen, "")
	take(FieldSpan, colorOrange, "")
	take(FieldCount, colorGreen, " responses")
	take(FieldDurationMS, colorGreen, "ms")

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		inline = append(inline, fmt.Sprintf("%s=%v", k, m.Fields[k]))
	}
	return strings.Join(inline, " ")
}
