package wit

// collectNamed appends the names of Named expressions reachable from t, in
// first-mention order, skipping names already seen.
func collectNamed(t TypeExpr, seen map[string]bool, out *[]string) {
	switch e := t.(type) {
	case Named:
		if !seen[e.Name] {
			seen[e.Name] = true
			*out = append(*out, e.Name)
		}
	case List:
		collectNamed(e.Elem, seen, out)
	case Option:
		collectNamed(e.Elem, seen, out)
	case Tuple:
		for _, el := range e.Elems {
			collectNamed(el, seen, out)
		}
	case Result:
		collectNamed(e.OK, seen, out)
		collectNamed(e.Err, seen, out)
	}
}

// References implements CompositeTypeDef.
func (r Record) References() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range r.Fields {
		collectNamed(f.Type, seen, &out)
	}
	return out
}

// References implements CompositeTypeDef.
func (v Variant) References() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range v.Cases {
		if c.Payload != nil {
			collectNamed(c.Payload, seen, &out)
		}
	}
	return out
}

// SignatureReferences returns the Named types mentioned anywhere in a
// signature set, in first-mention order. This is the seed for the dependency
// closure.
func SignatureReferences(sigs []MethodSignature) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sig := range sigs {
		for _, p := range sig.Params {
			collectNamed(p.Type, seen, &out)
		}
		if sig.Return != nil {
			collectNamed(sig.Return, seen, &out)
		}
	}
	return out
}
