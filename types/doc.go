// Package types is the registry of data kinds a declaration file can
// declare.
//
// Each [Descriptor] names a kind, its help group and expected section, the
// attributes a declaration of that kind accepts, the associated qualifiers
// generated alongside it, the attributes calculated once its value is set,
// and the [Capability] that computes, prompts for, and describes the value.
//
// Concrete domain input and output are delegated to a [Loader] and an
// [Opener]; the registry inspects only whether they succeed and the name they
// discover.
package types
