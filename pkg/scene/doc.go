// Package scene defines the scene description produced by evaluating a
// scene script: a canvas, a camera, an ordered list of styled items and
// the rays cast through them. A Scene is a flat list, not a graph; item
// order is paint order. Build turns a scene into a render.Renderer.
package scene
