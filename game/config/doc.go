// Package config loads and caches named board configurations from a
// directory of JSON files. Each file describes one preset: board size, win
// length, and the optional history cap.
package config
