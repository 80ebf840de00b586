package witparse

import (
	"log/slog"
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// parseRecord consumes a record block starting at lines[start] and returns
// the next unconsumed line index. Malformed field lines are skipped with a
// warning.
func parseRecord(lines []string, start int, logger *slog.Logger) (wit.Record, int) {
	header := strings.TrimSpace(lines[start])
	rec := wit.Record{
		Name: strings.TrimSuffix(strings.TrimPrefix(header, "record "), " {"),
	}

	i := start + 1
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "}") {
			i++
			break
		}
		i++
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		name, typeText, ok := strings.Cut(line, ":")
		if !ok {
			logger.Warn("skipping malformed record field", "record", rec.Name, "line", line)
			continue
		}
		t, err := wit.ParseTypeExpr(strings.TrimSuffix(strings.TrimSpace(typeText), ","))
		if err != nil {
			logger.Warn("skipping record field with bad type", "record", rec.Name, "line", line, "error", err)
			continue
		}
		rec.Fields = append(rec.Fields, wit.Field{Name: strings.TrimSpace(name), Type: t})
	}
	return rec, i
}

// parseVariant consumes a variant block starting at lines[start] and returns
// the next unconsumed line index.
func parseVariant(lines []string, start int, logger *slog.Logger) (wit.Variant, int) {
	header := strings.TrimSpace(lines[start])
	v := wit.Variant{
		Name: strings.TrimSuffix(strings.TrimPrefix(header, "variant "), " {"),
	}

	i := start + 1
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "}") {
			i++
			break
		}
		i++
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSuffix(line, ",")
		if open := strings.Index(line, "("); open >= 0 && strings.HasSuffix(line, ")") {
			payload, err := wit.ParseTypeExpr(line[open+1 : len(line)-1])
			if err != nil {
				logger.Warn("skipping variant case with bad payload", "variant", v.Name, "line", line, "error", err)
				continue
			}
			v.Cases = append(v.Cases, wit.Case{Name: strings.TrimSpace(line[:open]), Payload: payload})
			continue
		}
		v.Cases = append(v.Cases, wit.Case{Name: line})
	}
	return v, i
}

// ParseWorld recovers a world's name and imports from WIT text, reporting
// whether a world block was present at all. Export-only worlds parse with an
// empty import list.
func ParseWorld(text string) (wit.WorldModel, bool) {
	var w wit.WorldModel
	found := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "world "):
			w.Name = strings.TrimSuffix(strings.TrimPrefix(line, "world "), " {")
			found = true
		case strings.HasPrefix(line, "import ") && strings.HasSuffix(line, ";"):
			w.Imports = append(w.Imports, strings.TrimSuffix(strings.TrimPrefix(line, "import "), ";"))
		}
	}
	return w, found
}
