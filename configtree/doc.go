// Package configtree maps decoded documents (nested mappings, sequences and
// scalars) onto typed, versioned settings structs and back.
//
// Conversion is driven by a [Registry] of [Converter]s consulted in order,
// first match wins. The engine never aborts on bad input: a value that
// cannot be converted keeps its compiled-in default and produces a
// [Warning] naming its path.
//
// # Trees
//
// [Engine.Load] binds a tree of [Node]s over a schema instance. Every
// persistent field gets a node, whether or not the document mentions it, so
// the tree always reflects the whole schema. Nodes do not copy values; they
// resolve them through their parent, so edits made through the tree and
// edits made directly on the instance are both visible to [Root.Save].
//
// # Paths
//
// Field keys come from the `config` struct tag, or the lower-camel Go name.
// An underscore in a key stands for a dot, so `config:"sound_volume"`
// addresses the document path "sound.volume". Either a flat "sound.volume"
// key or nested mappings are accepted on load; nested mappings are written
// on save. Sequence elements are addressed as "path[i]".
//
// # Comments
//
// Comments are stored on the [Root] keyed by path, not on nodes, so they
// survive value changes. Default comments come from the `comment` struct
// tag, with lines separated by "|".
package configtree
