package filter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply runs a JMESPath expression over a JSON body and returns the
// selection as compact JSON. An empty expression returns the body unchanged.
func Apply(body []byte, expression string) ([]byte, error) {
	if expression == "" {
		return body, nil
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}

	// HTML escaping would change the text the highlighter sees
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return bytes.TrimRight(out.Bytes(), "\n"), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}
