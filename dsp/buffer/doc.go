// Package buffer provides the sample FIFO used to reconcile a host's block
// size with the fixed block size of an internal processing engine.
package buffer
