// Package pitch provides real-time pitch and formant shifting.
//
// [Vocoder] is a streaming phase vocoder with independent pitch and formant
// scales that consumes and produces a fixed number of samples per call.
// [BlockAdapter] bridges arbitrary host block sizes to any [Engine] with a
// fixed block size through a staging buffer and an output FIFO.
package pitch
