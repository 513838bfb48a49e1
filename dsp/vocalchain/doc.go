// Package vocalchain runs the nine vocal-life modules as one processor.
//
// A [Processor] keeps a dry copy of each block, runs the human, bath and
// character modules in that fixed order, and blends the result against the
// dry copy with a master mix.
package vocalchain
