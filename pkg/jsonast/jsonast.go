// Package jsonast renders parser output (builder.Node trees, bare tokens,
// and the lists Flatten produces) as JSON, and exposes gjson path queries
// over the result — a cheap way to inspect or diff an AST without a
// bespoke printer for every grammar.
package jsonast

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mailspice/golrt/pkg/builder"
	"github.com/mailspice/golrt/pkg/token"
)

// ToJSON renders a Parse result as a JSON document. Tokens become
// {"kind":"token","name":...,"value":...,"offset":...} objects, Nodes
// become {"kind":"node","label":...,"children":...} objects, and lists
// become JSON arrays — recursively, since a Node's Children or a list's
// elements may themselves be any of these.
func ToJSON(value any) (string, error) {
	return marshal(value)
}

func marshal(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case token.Token:
		return marshalToken(v)
	case builder.Node:
		return marshalNode(v)
	case []any:
		return marshalList(v)
	default:
		return "", fmt.Errorf("jsonast: unsupported AST value type %T", value)
	}
}

func marshalToken(tok token.Token) (string, error) {
	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "kind", "token"); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "name", string(tok.Name)); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "value", tok.Value); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "offset", tok.Offset); err != nil {
		return "", err
	}
	return doc, nil
}

func marshalNode(node builder.Node) (string, error) {
	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "kind", "node"); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "label", node.Label); err != nil {
		return "", err
	}
	childrenJSON, err := marshal(node.Children)
	if err != nil {
		return "", err
	}
	if doc, err = sjson.SetRaw(doc, "children", childrenJSON); err != nil {
		return "", err
	}
	return doc, nil
}

func marshalList(items []any) (string, error) {
	doc := "[]"
	for i, item := range items {
		itemJSON, err := marshal(item)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, strconv.Itoa(i), itemJSON)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// Query runs a gjson path expression ("children.0.label", "name") against
// a document produced by ToJSON.
func Query(doc, path string) gjson.Result {
	return gjson.Get(doc, path)
}
