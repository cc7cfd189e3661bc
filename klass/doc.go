// Package klass compiles declarative definitions into classes, layering a
// classical object model over a dynamic member table:
//   - Constructors via the reserved `initialize` key.
//   - Single inheritance via `extend` and linear mixin inclusion via
//     `include`; member tables merge left to right with a class's own
//     members winning every collision.
//   - Static members via `static`, attached to the class itself and never
//     inherited or mixed in.
//   - Superclass dispatch from any method through call.Super, which invokes
//     the overridden implementation bound to the current receiver.
//   - Shared class-level data members, and accessor (getter/setter) members
//     installed as descriptors rather than evaluated values.
//
// The member name `super` is reserved; declaring it fails with
// ReservedNameError before any class is produced. Calling Super where no
// base implementation exists fails at call time with
// NoSuperclassMethodError.
package klass
