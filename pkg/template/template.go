// Package template defines status line templates: typed trees of literal
// text, computed fields and conditional branches, evaluated against a host
// environment into styled text.
package template

import (
	"github.com/liushihao456/emacs-mini-modeline/pkg/ui"
)

// Env provides the values of computed fields. The second return value
// reports whether the field has a value; fields without a value evaluate
// to empty and count as false in conditions.
type Env interface {
	Field(name string) (string, bool)
}

// MapEnv is an Env backed by a map, for tests and static hosts.
type MapEnv map[string]string

// Field returns the value stored under name.
func (m MapEnv) Field(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// FuncEnv is an Env backed by a function.
type FuncEnv func(name string) (string, bool)

// Field calls the function.
func (f FuncEnv) Field(name string) (string, bool) { return f(name) }

// Node is a single template element. It is implemented by Text, Field and
// Cond.
type Node interface {
	eval(Env) ui.Text
}

// Nodes is a sequence of template elements; a whole template is a Nodes.
type Nodes []Node

// Eval evaluates the template against env, concatenating the evaluation of
// each element.
func (ns Nodes) Eval(env Env) ui.Text {
	texts := make([]ui.Text, len(ns))
	for i, n := range ns {
		texts[i] = n.eval(env)
	}
	return ui.Concat(texts...)
}

// Text is a literal template element, in an optional face.
type Text struct {
	Text string
	Face string
}

func (t Text) eval(Env) ui.Text {
	if t.Face == "" {
		return ui.T(t.Text)
	}
	return ui.T(t.Text, t.Face)
}

// Field is a computed template element: its value comes from the
// environment, and is shown in an optional face. A field without a value
// evaluates to empty text.
type Field struct {
	Name string
	Face string
}

func (f Field) eval(env Env) ui.Text {
	v, ok := env.Field(f.Name)
	if !ok {
		return nil
	}
	if f.Face == "" {
		return ui.T(v)
	}
	return ui.T(v, f.Face)
}

// Group is a concatenation of nodes usable where a single node is
// expected.
type Group struct {
	Nodes Nodes
}

func (g Group) eval(env Env) ui.Text {
	return g.Nodes.Eval(env)
}

// Cond is a conditional template element. If the named field has a
// nonempty value, the Then branch is evaluated; otherwise the Else branch
// is.
type Cond struct {
	If   string
	Then Nodes
	Else Nodes
}

func (c Cond) eval(env Env) ui.Text {
	if v, ok := env.Field(c.If); ok && v != "" {
		return c.Then.Eval(env)
	}
	return c.Else.Eval(env)
}
