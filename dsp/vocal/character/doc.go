// Package character holds the novelty modules: the rubber-duck quack and
// the slippery soap-bar glitch.
package character
