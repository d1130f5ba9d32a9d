// Package arena provides a hierarchical allocation context.
//
// Heap state with teardown obligations (validator contexts, loaded
// components, service references) attaches to an Arena and is released
// when the arena is freed. Arenas form a tree: freeing a parent frees all
// children first, and within an arena resources are released in
// reverse-acquisition order.
//
//	root := arena.New(nil)
//	defer root.Free()
//
//	ctx, err := validator.New(context.Background(), root)
//
// Go's garbage collector owns plain memory (strings, slices); the arena
// exists for resources with ordering-sensitive release, not for bytes.
package arena
