// Package interact translates pointer input into edits of a hypergraph
// model.
//
// A [Controller] is a two-state machine. A press over a node enters
// Dragging and remembers the offset between the pointer and the node
// position; each move places the node at pointer minus offset; release
// returns to Idle. A press and release with no more than ClickThreshold of
// pointer travel is a click, reported to every [ClickListener]. Clicking
// empty space reports nothing.
//
// Wheel input zooms about the pointer by re-projecting every node once per
// event:
//
//	newPos = pointer + (oldPos - pointer) * scale
package interact
