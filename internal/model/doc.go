// Package model is an in-memory scene: a list of layers and objects built
// from the reference geometry in package geom. Documents can be assembled
// in code or loaded from a YAML or JSON description.
//
// A description looks like:
//
//	layers:
//	  - name: Default
//	    color: "#000000"
//	objects:
//	  - name: origin
//	    layer: 0
//	    point: [0, 0, 0]
//	  - mesh:
//	      vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
//	      faces: [[0, 1, 2]]
package model
