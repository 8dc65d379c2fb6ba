package types

import errorsmod "cosmossdk.io/errors"

var (
	ErrUnknownAlgorithm    = errorsmod.Register(ModuleName, 2, "unknown algorithm")
	ErrAlreadyPatched      = errorsmod.Register(ModuleName, 3, "codepoints already patched")
	ErrDuplicateCodepoint  = errorsmod.Register(ModuleName, 4, "duplicate codepoint")
	ErrInvalidConfig       = errorsmod.Register(ModuleName, 5, "invalid configuration")
	ErrUnknownCapability   = errorsmod.Register(ModuleName, 6, "capability not supported")
	ErrDescriptorMismatch  = errorsmod.Register(ModuleName, 7, "descriptor table does not match records")
	ErrAbsentHybridEmitted = errorsmod.Register(ModuleName, 8, "absent hybrid slot would be emitted")
	ErrUnknownProvider     = errorsmod.Register(ModuleName, 9, "unknown provider")
	ErrProviderUnavailable = errorsmod.Register(ModuleName, 10, "provider not available")
	ErrAlgorithmDisabled   = errorsmod.Register(ModuleName, 11, "algorithm not enabled")
	ErrNotImplemented      = errorsmod.Register(ModuleName, 12, "algorithm not implemented by any backend")
	ErrRoundTripFailed     = errorsmod.Register(ModuleName, 13, "round trip failed")
)
