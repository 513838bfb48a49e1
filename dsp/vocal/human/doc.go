// Package human holds the modules that imitate the imperfections of a
// human singer: pitch drift, formant movement, breath noise, timing wobble
// and volume drift.
package human
