/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorienev/hiku/hikuctx"
	"github.com/okorienev/hiku/query"
	"github.com/okorienev/hiku/sched"
	"github.com/okorienev/hiku/sentinel"
)

func personGraph() (*Graph, *FieldResolver, error) {
	nameResolver := NewFieldResolver(func(fields []*query.Field, ids []interface{}) (interface{}, error) {
		return nil, nil
	})
	companyLink := NewLinkResolver(func(requiresValues []interface{}, options query.Options) (interface{}, error) {
		return nil, nil
	})
	g, err := Build(NodeConfig{
		Fields: map[string]FieldConfig{
			"greeting": {Resolver: NewFieldResolver(func(fields []*query.Field, ids []interface{}) (interface{}, error) {
				return nil, nil
			})},
		},
	}, map[string]NodeConfig{
		"person": {
			Fields: map[string]FieldConfig{
				"name":    {Resolver: nameResolver},
				"surname": {Resolver: nameResolver},
			},
			Links: map[string]LinkConfig{
				"company": {NodeName: "company", Cardinality: One, Resolver: companyLink},
			},
		},
		"company": {
			Fields: map[string]FieldConfig{
				"title": {Resolver: NewFieldResolver(func(fields []*query.Field, ids []interface{}) (interface{}, error) {
					return nil, nil
				})},
			},
		},
	})
	return g, nameResolver, err
}

func TestBuildAssemblesRootAndNodes(t *testing.T) {
	g, _, err := personGraph()
	require.NoError(t, err)

	_, ok := g.Root.Field("greeting")
	assert.True(t, ok)

	person, ok := g.Node("person")
	require.True(t, ok)
	_, ok = person.Field("name")
	assert.True(t, ok)

	link, ok := person.Link("company")
	require.True(t, ok)
	assert.Equal(t, "company", link.NodeName)
	assert.Equal(t, One, link.Cardinality)

	_, ok = g.Node("ghost")
	assert.False(t, ok)
}

func TestBuildInternsResolverIDsBySharedPointer(t *testing.T) {
	g, nameResolver, err := personGraph()
	require.NoError(t, err)

	person, _ := g.Node("person")
	nameField, _ := person.Field("name")
	surnameField, _ := person.Field("surname")

	assert.NotZero(t, nameResolver.ID())
	assert.Equal(t, nameField.Resolver.ID(), surnameField.Resolver.ID(),
		"fields sharing one *FieldResolver pointer must intern to the same ResolverID")

	company, _ := g.Node("company")
	titleField, _ := company.Field("title")
	assert.NotEqual(t, nameField.Resolver.ID(), titleField.Resolver.ID())
}

func TestBuildRejectsEmptyNodeName(t *testing.T) {
	_, err := Build(NodeConfig{}, map[string]NodeConfig{
		"": {Fields: map[string]FieldConfig{}},
	})
	assert.Error(t, err)
}

func TestBuildRejectsFieldWithNilResolver(t *testing.T) {
	_, err := Build(NodeConfig{
		Fields: map[string]FieldConfig{"x": {}},
	}, nil)
	assert.Error(t, err)
}

func TestBuildRejectsLinkToUnknownNode(t *testing.T) {
	_, err := Build(NodeConfig{
		Links: map[string]LinkConfig{
			"ghost": {NodeName: "does-not-exist", Cardinality: Maybe, Resolver: NewLinkResolver(
				func(requiresValues []interface{}, options query.Options) (interface{}, error) { return nil, nil },
			)},
		},
	}, nil)
	assert.Error(t, err)
}

func TestBuildRejectsLinkRequiringUnknownField(t *testing.T) {
	_, err := Build(NodeConfig{}, map[string]NodeConfig{
		"person": {
			Links: map[string]LinkConfig{
				"company": {
					NodeName: "person", Cardinality: One, Requires: "ghost_field",
					Resolver: NewLinkResolver(func(requiresValues []interface{}, options query.Options) (interface{}, error) {
						return nil, nil
					}),
				},
			},
		},
	})
	assert.Error(t, err)
}

func TestCardinalityString(t *testing.T) {
	assert.Equal(t, "Maybe", Maybe.String())
	assert.Equal(t, "One", One.String())
	assert.Equal(t, "Many", Many.String())
}

func TestOptionRequired(t *testing.T) {
	required := Option{Name: "id", Type: IntType, Default: sentinel.Nothing}
	optional := Option{Name: "limit", Type: IntType, Default: 10}
	assert.True(t, required.Required())
	assert.False(t, optional.Required())
}

func TestFieldResolverCallDispatchesByKind(t *testing.T) {
	plain := NewFieldResolver(func(fields []*query.Field, ids []interface{}) (interface{}, error) {
		return "plain", nil
	})
	v, err := plain.Call(hikuctx.New(nil), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	ctxAware := NewContextFieldResolver(func(ctx hikuctx.Context, fields []*query.Field, ids []interface{}) (interface{}, error) {
		return ctx.RequestID().String(), nil
	})
	c := hikuctx.New(nil)
	v, err = ctxAware.Call(c, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, c.RequestID().String(), v)
}

func TestFieldResolverCallPanicsOnSubquery(t *testing.T) {
	sq := NewSubqueryFieldResolver(func(fields []*query.Field, ids []interface{}, q *sched.Queue, ts *sched.TaskSet, ctx hikuctx.Context, writer RowWriter) error {
		return nil
	})
	assert.Panics(t, func() { _, _ = sq.Call(hikuctx.New(nil), nil, nil) })
}

func TestFieldResolverCallSubqueryInvokesRegisteredFunc(t *testing.T) {
	var gotIDs []interface{}
	sq := NewSubqueryFieldResolver(func(fields []*query.Field, ids []interface{}, q *sched.Queue, ts *sched.TaskSet, ctx hikuctx.Context, writer RowWriter) error {
		gotIDs = ids
		writer.Set(ids[0], "title", "resolved")
		return nil
	})

	q := sched.NewQueue(fifoExec{})
	err := q.Run(func(root *sched.TaskSet) {
		q.Submit(root, func() error {
			return sq.CallSubquery(nil, []interface{}{"id-1"}, q, root, hikuctx.New(nil), recordingWriter{})
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"id-1"}, gotIDs)
}

func TestFieldResolverCallSubqueryPanicsOnNonSubquery(t *testing.T) {
	plain := NewFieldResolver(func(fields []*query.Field, ids []interface{}) (interface{}, error) { return nil, nil })
	assert.Panics(t, func() {
		_ = plain.CallSubquery(nil, nil, nil, nil, hikuctx.New(nil), recordingWriter{})
	})
}

// fifoExec is the minimal sched.Executor this file needs to drive sched.Queue.Run inline.
type fifoExec struct{}

func (fifoExec) Submit(fn sched.Submission) { fn() }
func (fifoExec) Process()                  {}

// recordingWriter discards writes; it only needs to satisfy RowWriter's shape.
type recordingWriter struct{}

func (recordingWriter) Set(ident interface{}, key string, value interface{}) {}

func TestLinkResolverKindAndID(t *testing.T) {
	lr := NewLinkResolver(func(requiresValues []interface{}, options query.Options) (interface{}, error) {
		return nil, nil
	})
	assert.Equal(t, Plain, lr.Kind())
	assert.Zero(t, lr.ID(), "ID is unassigned until the owning Graph is built")
}
