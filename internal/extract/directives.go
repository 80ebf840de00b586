package extract

import (
	"go/ast"
	"regexp"
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// Directive comments mark the entry-point struct and the exposed methods:
//
//	//hyper:process wit_world="demo-v0"
//	//hyper:remote
//	//hyper:local
//	//hyper:http
const (
	processDirective = "//hyper:process"
	remoteDirective  = "//hyper:remote"
	localDirective   = "//hyper:local"
	httpDirective    = "//hyper:http"
)

var witWorldArg = regexp.MustCompile(`wit_world\s*=\s*"([^"]*)"`)

// processWorld returns the wit_world argument of a //hyper:process directive
// in the comment group, if present. The second return reports whether the
// directive itself was found.
func processWorld(doc *ast.CommentGroup) (world string, found bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(c.Text)
		if !strings.HasPrefix(text, processDirective) {
			continue
		}
		if m := witWorldArg.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		return "", true
	}
	return "", false
}

// capabilities returns the capability tags present in a method's doc
// comment, in the fixed remote, local, http order.
func capabilities(doc *ast.CommentGroup) []wit.Capability {
	if doc == nil {
		return nil
	}
	present := make(map[wit.Capability]bool)
	for _, c := range doc.List {
		switch strings.TrimSpace(c.Text) {
		case remoteDirective:
			present[wit.CapRemote] = true
		case localDirective:
			present[wit.CapLocal] = true
		case httpDirective:
			present[wit.CapHTTP] = true
		}
	}
	var caps []wit.Capability
	for _, c := range wit.CapabilityOrder {
		if present[c] {
			caps = append(caps, c)
		}
	}
	return caps
}
