package avro

import (
	"fmt"
	"strings"
)

// replace substitutes "{key}" placeholders in template with the string form
// of the corresponding entry in params. Used by the structured error types
// to turn a Message template plus Params into a final string.
func replace(template string, params map[string]interface{}) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}
