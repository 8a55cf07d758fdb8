// Package view renders navigation handlers as components. A Registry maps
// handler ids to component factories, a Mount keeps one component mounted
// into an Element and implements navigation.Renderer, and an Engine renders
// file templates through the django (pongo2) template engine.
package view
