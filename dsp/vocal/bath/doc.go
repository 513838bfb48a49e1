// Package bath holds the environment modules: early reflections off
// porcelain tiles and the humidity low-pass of a steamed-up room.
package bath
