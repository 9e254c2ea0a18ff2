// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"iter"

	"irkit/bindings"
)

// Entity is a wrapper around a value handle of a module: *Function or *GlobalValue.
type Entity interface {
	comparable
	Ref() bindings.ValueRef
	Name() string
}

// refOps are the backend calls that differ between entity kinds.
type refOps struct {
	first    func(bindings.ModuleRef) bindings.ValueRef
	last     func(bindings.ModuleRef) bindings.ValueRef
	next     func(bindings.ValueRef) bindings.ValueRef
	previous func(bindings.ValueRef) bindings.ValueRef
	named    func(bindings.ModuleRef, string) bindings.ValueRef
	remove   func(bindings.ValueRef)
}

// Collection is a view over the entities of one kind owned by a module. It stores no
// entities: every call asks the backend, so the order seen is the backend's definition
// order, and positional lookup walks from the first entity.
//
// Adding or deleting entities while a walk is in progress is backend-defined. The walk
// asks for the successor of the current entity only after the caller is done with it,
// and a deleted entity has no successor, so deleting the current entity ends the walk.
type Collection[T Entity] struct {
	mod  *Module
	ops  *refOps
	wrap func(bindings.ValueRef) T
}

func (c *Collection[T]) get(ref bindings.ValueRef) T {
	if ref.IsNull() {
		var zero T
		return zero
	}
	return c.wrap(ref)
}

// Module returns the owning module.
func (c *Collection[T]) Module() *Module {
	return c.mod
}

// First returns the first entity, or nil if there is none.
func (c *Collection[T]) First() T {
	return c.get(c.ops.first(c.mod.ref))
}

// Last returns the last entity, or nil if there is none.
func (c *Collection[T]) Last() T {
	return c.get(c.ops.last(c.mod.ref))
}

// Next returns the entity after e, or nil at the end.
func (c *Collection[T]) Next(e T) T {
	return c.get(c.ops.next(e.Ref()))
}

// Previous returns the entity before e, or nil at the start.
func (c *Collection[T]) Previous(e T) T {
	return c.get(c.ops.previous(e.Ref()))
}

// Named returns the entity called name, or nil.
func (c *Collection[T]) Named(name string) T {
	return c.get(c.ops.named(c.mod.ref, name))
}

// At returns the n-th entity counting from 1, or nil if there are fewer than n.
func (c *Collection[T]) At(n int) T {
	return c.Lookup(Index(n))
}

// Lookup resolves key to an entity, or nil.
func (c *Collection[T]) Lookup(key Key) T {
	return c.get(key.resolve(c.mod.ref, c.ops))
}

// Delete removes e from the module. Every wrapper of e is left dangling.
func (c *Collection[T]) Delete(e T) {
	c.ops.remove(e.Ref())
}

// Each calls fn on every entity from first to last.
func (c *Collection[T]) Each(fn func(T)) {
	for e := range c.All() {
		fn(e)
	}
}

// All returns the entities from first to last as a sequence. Each iteration starts a
// new forward walk.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for ref := c.ops.first(c.mod.ref); !ref.IsNull(); ref = c.ops.next(ref) {
			if !yield(c.wrap(ref)) {
				return
			}
		}
	}
}

// Backward returns the entities from last to first.
func (c *Collection[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for ref := c.ops.last(c.mod.ref); !ref.IsNull(); ref = c.ops.previous(ref) {
			if !yield(c.wrap(ref)) {
				return
			}
		}
	}
}

// Iterator returns a pull iterator positioned before the first entity.
func (c *Collection[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{c: c}
}

// Len walks the collection and counts its entities.
func (c *Collection[T]) Len() int {
	n := 0
	for ref := c.ops.first(c.mod.ref); !ref.IsNull(); ref = c.ops.next(ref) {
		n++
	}
	return n
}

// Names returns the entity names in order.
func (c *Collection[T]) Names() []string {
	var names []string
	for e := range c.All() {
		names = append(names, e.Name())
	}
	return names
}

// Iterator walks a collection forward once.
//
//	it := m.Functions().Iterator()
//	for it.Next() {
//		f := it.Value()
//	}
type Iterator[T Entity] struct {
	c    *Collection[T]
	cur  bindings.ValueRef
	done bool
}

// Next advances to the next entity and reports whether there is one.
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}
	if it.cur.IsNull() {
		it.cur = it.c.ops.first(it.c.mod.ref)
	} else {
		it.cur = it.c.ops.next(it.cur)
	}
	if it.cur.IsNull() {
		it.done = true
		return false
	}
	return true
}

// Value returns the current entity, or nil before the first and after the last call
// to Next.
func (it *Iterator[T]) Value() T {
	return it.c.get(it.cur)
}

// Key selects an entity of a collection, either by name or by position.
type Key interface {
	resolve(bindings.ModuleRef, *refOps) bindings.ValueRef
}

// Name is a Key looking an entity up by its symbol name.
type Name string

func (n Name) resolve(m bindings.ModuleRef, ops *refOps) bindings.ValueRef {
	return ops.named(m, string(n))
}

// Index is a Key selecting the n-th entity, counting from 1. Resolving it walks n-1
// steps from the first entity.
type Index int

func (n Index) resolve(m bindings.ModuleRef, ops *refOps) bindings.ValueRef {
	if n < 1 {
		return bindings.ValueRef{}
	}
	ref := ops.first(m)
	for i := Index(1); i < n && !ref.IsNull(); i++ {
		ref = ops.next(ref)
	}
	return ref
}
