// Package resource provides the handle table behind native resources.
//
// Every resource a native library allocates (dense arrays, device arrays,
// networks, classifiers, detectors) is stored in one Table and identified by
// an opaque Handle. The table is the single place where a handle becomes
// valid and the single place where it stops being valid.
//
//	table := resource.NewTable()
//	mats := resource.NewTyped[*header](table, TypeMat)
//
//	h := mats.Insert(hdr)
//	hdr, ok := mats.Get(h)
//	hdr, ok = mats.Remove(h) // runs hdr.Drop if hdr is a Dropper
//
// # Generations
//
// Handles carry the generation of their slot. Releasing a resource advances
// the generation, so using or releasing a handle a second time fails even if
// the slot has since been handed to a new resource. A failed release emits
// EventStaleDrop, which is how double releases become observable.
//
// # Observers
//
// Observers receive every lifecycle event. Stats counts them:
//
//	stats := &resource.Stats{}
//	table.Subscribe(stats)
//	...
//	if s := stats.Snapshot(); s.StaleDrops > 0 {
//	    // a handle was released twice
//	}
//
// Resources are not garbage collected by the table. Owners release every
// handle they hold; Close drops whatever is still live.
package resource
