// Package layout implements the sidenote placement engine and the driver
// that orchestrates it.
//
// The problem is one-dimensional packing with obstacles: an ordered sequence
// of variably-sized sidenotes is assigned alternately to a left and a right
// margin column, and each column's notes must be placed so that every note
// sits as close as possible to its anchor, no two notes overlap, and no note
// intersects a proscribed range (full-width tables, figures, other margin
// content, or the column's bottom edge).
//
// A layout run flows one way through four stages:
//
//  1. Visibility classification - notes whose anchors sit inside collapsed
//     disclosure regions are parked in an inert store; revealed notes are
//     reinserted into their column in index order.
//  2. Obstacle collection - the proscribed vertical ranges for each column
//     are rebuilt from current page geometry, ending with a sentinel at the
//     column's bottom edge.
//  3. Placement - the engine walks the visible notes in index order,
//     computing for each the obstacle-bounded room it may occupy, resolving
//     overlap by moving notes up into available headroom, pushing neighbors
//     down, or relocating past the next obstacle, revisiting a note after
//     each relocation.
//  4. Flush - on success the final offsets are written back through the
//     geometry provider and the columns are revealed; on overflow the
//     column keeps its previous valid placement.
//
// Everything is recomputed from current geometry on every run; the engine
// holds no layout state between runs beyond the note/column structures
// themselves.
package layout
