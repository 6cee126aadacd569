package lexicon

import "strings"

// Suffix detachment rules per part of speech, tried in order.
var substitutions = map[POS][][2]string{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	Adverb: nil,
}

// morphy returns the base forms of form that exist in the pos index.
// Exception lists win over rules; rules are reapplied until something matches.
func (wn *WordNet) morphy(form string, pos POS) []string {
	index := wn.index[pos]
	if index == nil {
		return nil
	}

	known := func(forms []string) []string {
		var out []string
		seen := make(map[string]bool, len(forms))
		for _, f := range forms {
			if _, ok := index[f]; ok && !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
		return out
	}

	if bases, ok := wn.exceptions[pos][form]; ok {
		return known(append([]string{form}, bases...))
	}

	forms := applyRules([]string{form}, pos)
	if res := known(append([]string{form}, forms...)); len(res) > 0 {
		return res
	}
	for len(forms) > 0 {
		forms = applyRules(forms, pos)
		if res := known(forms); len(res) > 0 {
			return res
		}
	}
	return nil
}

func applyRules(forms []string, pos POS) []string {
	var out []string
	seen := make(map[string]bool)
	for _, form := range forms {
		for _, sub := range substitutions[pos] {
			if !strings.HasSuffix(form, sub[0]) || len(form) <= len(sub[0]) {
				continue
			}
			if base := form[:len(form)-len(sub[0])] + sub[1]; !seen[base] {
				seen[base] = true
				out = append(out, base)
			}
		}
	}
	return out
}
