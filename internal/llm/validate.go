package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

type compiledSchema struct {
	def      []byte
	compiled *jsonschema.Schema
}

// compiled schemas keyed by Schema.Name; an entry is rebuilt when the
// definition under that name changes.
var (
	schemaMu    sync.Mutex
	schemaCache = map[string]compiledSchema{}
)

// validateResponse checks raw against schema and returns the JSON to hand
// to the caller. Models that ignore the structured output setting often
// wrap the object in a markdown code fence, which is removed first.
// A nil schema passes raw through untouched.
func validateResponse(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}

	body := stripCodeFence(raw)
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return body, nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", schema.Name, err)
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()

	if c, ok := schemaCache[schema.Name]; ok && bytes.Equal(c.def, def) {
		return c.compiled, nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", schema.Name, err)
	}
	url := "mem://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", schema.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	schemaCache[schema.Name] = compiledSchema{def: def, compiled: compiled}
	return compiled, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block, if any.
func stripCodeFence(raw []byte) []byte {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = b[3:]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		b = b[nl+1:]
	} else {
		return bytes.TrimSpace(raw)
	}
	b = bytes.TrimSpace(b)
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}
