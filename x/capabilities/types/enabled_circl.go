//go:build !oqs_full

package types

// Algorithms implemented by the linked circl backend.
var defaultEnabledAlgorithms = []Algorithm{
	KEMFrodo640SHAKE,
	KEMKyber512,
	KEMKyber768,
	KEMKyber1024,
	SigDilithium2,
	SigDilithium3,
	SigDilithium5,
}
