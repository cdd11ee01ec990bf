package template

import "strings"

// Fill substitutes the record's declared variables into its body, in declared
// order. A variable with no supplied value resolves to a bracketed marker
// ("[VARNAME_HERE]") so the client can spot unfilled slots. Supplied keys the
// template does not declare are ignored.
func Fill(rec Record, values map[string]string) string {
	body := rec.Body
	for _, name := range rec.Variables {
		val, ok := values[name]
		if !ok {
			val = "[" + strings.ToUpper(name) + "_HERE]"
		}
		body = strings.ReplaceAll(body, "{"+name+"}", val)
	}
	return body
}
