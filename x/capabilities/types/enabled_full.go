//go:build oqs_full

package types

// Advertise every compiled-in algorithm. Primitives the linked backend does
// not implement are reported as unavailable by the provider.
var defaultEnabledAlgorithms = AllAlgorithms()
