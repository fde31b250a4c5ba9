// Package engine implements the hookrt component runtime.
//
// The runtime re-renders a tree of function components into a host tree
// while keeping per-component state alive across re-renders. It has three
// cooperating parts:
//
//   - Hook Engine: UseState, UseReducer, UseRef, UseEffect, UseCallback,
//     UseMemo and UseContext read and write the rendering instance's
//     HookStore slot selected by call order.
//   - Reconciler: pairs the component descriptors a render produced with
//     the instances of the previous render (by explicit key, or by component
//     and ordinal), reuses matches and unmounts the rest.
//   - Scheduler: state changes and effect bodies never run inline. They are
//     queued as tasks and executed by Root.Flush (deterministic, for tests
//     and synchronous drivers) or Root.Run (long-lived loop).
//
// ARCHITECTURE:
//
// Explicit render context:
// Components receive a *Render. Every hook takes it as its first argument,
// so there is no package-level "current instance". A *Render is only valid
// while its component function executes; using it afterwards raises a
// HOOK_CONTEXT error.
//
// Explicit store:
// The HookStore belongs to a Root. Entries are created when an instance
// first renders and deleted exactly once, when the reconciler unmounts it.
// Root.Unmount destroys the store wholesale.
//
// Single-threaded:
// Rendering, hooks and task execution run on the goroutine that calls
// Render, Flush or Run. The task queue accepts Defer from any goroutine.
//
// Task ordering:
// The default queue is FIFO, but callers must not depend on the relative
// order of tasks belonging to different instances. The only guarantee is
// that an effect's cleanup runs before its next body.
//
// Liveness:
// Tasks whose instance was unmounted after they were queued are dropped
// and traced as "dropped".
//
// Unkeyed siblings:
// Without keys, identity follows component and position. Reordering
// unkeyed siblings of the same component hands each position's state to
// whichever element now occupies it. Use keys for lists that reorder.
package engine
