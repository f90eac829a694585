// Package loader provides the plugin-like feature loading system.
//
// Features (merge, history) implement the Feature interface; the
// Manager registers them and wires their routes into the Fiber app at
// startup, skipping disabled ones. This keeps features developed and
// tested in isolation.
package loader
