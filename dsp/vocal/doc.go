// Package vocal defines the contract shared by the vocal-life modules.
//
// Every module embeds [Base], which owns the enabled flag, the wet/dry mix,
// the prepared format and a per-instance pseudorandom generator. Parameter
// setters publish through lock-free cells so a control thread may call
// them while the audio thread is inside Process.
//
// The concrete modules live in the human, bath and character subpackages.
package vocal
