package template

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Templates are written in configuration files as YAML lists. Each element
// is either a plain string (a literal), or a mapping in one of four forms:
//
//	- text: "literal"
//	  face: optional-face
//	- field: field-name
//	  face: optional-face
//	- if: field-name
//	  then: [ ...nodes... ]
//	  else: [ ...nodes... ]
//	- group: [ ...nodes... ]

// UnmarshalYAML implements yaml.Unmarshaler.
func (ns *Nodes) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: template must be a list", value.Line)
	}
	nodes := make(Nodes, 0, len(value.Content))
	for _, item := range value.Content {
		node, err := decodeNode(item)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
	}
	*ns = nodes
	return nil
}

func decodeNode(item *yaml.Node) (Node, error) {
	switch item.Kind {
	case yaml.ScalarNode:
		var s string
		if err := item.Decode(&s); err != nil {
			return nil, err
		}
		return Text{Text: s}, nil
	case yaml.MappingNode:
		return decodeMappingNode(item)
	default:
		return nil, fmt.Errorf(
			"line %d: template element must be a string or a mapping", item.Line)
	}
}

func decodeMappingNode(item *yaml.Node) (Node, error) {
	keys := make(map[string]bool)
	for i := 0; i < len(item.Content); i += 2 {
		keys[item.Content[i].Value] = true
	}
	switch {
	case keys["field"]:
		var f struct {
			Field string `yaml:"field"`
			Face  string `yaml:"face"`
		}
		if err := item.Decode(&f); err != nil {
			return nil, err
		}
		return Field{Name: f.Field, Face: f.Face}, nil
	case keys["if"]:
		var c struct {
			If   string `yaml:"if"`
			Then Nodes  `yaml:"then"`
			Else Nodes  `yaml:"else"`
		}
		if err := item.Decode(&c); err != nil {
			return nil, err
		}
		return Cond{If: c.If, Then: c.Then, Else: c.Else}, nil
	case keys["group"]:
		var g struct {
			Group Nodes `yaml:"group"`
		}
		if err := item.Decode(&g); err != nil {
			return nil, err
		}
		return Group{Nodes: g.Group}, nil
	case keys["text"]:
		var t struct {
			Text string `yaml:"text"`
			Face string `yaml:"face"`
		}
		if err := item.Decode(&t); err != nil {
			return nil, err
		}
		return Text{Text: t.Text, Face: t.Face}, nil
	default:
		return nil, fmt.Errorf(
			"line %d: template element needs a text, field, if or group key", item.Line)
	}
}
