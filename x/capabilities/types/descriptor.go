package types

// GroupDescriptor is the externally visible view of one group variant. It
// does not own numeric data: Index points into the record store of the
// keeper that built it, so a patched record is visible through every
// descriptor sharing that index.
type GroupDescriptor struct {
	Name         string
	InternalName string
	Algorithm    string
	Index        int
	Variant      Variant
}

// Params resolves the descriptor against rec.
func (d GroupDescriptor) Params(rec GroupRecord) Params {
	isKEM := int32(0)
	if rec.IsKEM {
		isKEM = 1
	}
	return Params{
		{ParamGroupName, d.Name},
		{ParamGroupNameInternal, d.InternalName},
		{ParamGroupAlg, d.Algorithm},
		{ParamGroupID, rec.ID(d.Variant)},
		{ParamGroupSecurityBits, rec.SecurityBits},
		{ParamMinTLS, rec.MinTLS},
		{ParamMaxTLS, rec.MaxTLS},
		{ParamMinDTLS, rec.MinDTLS},
		{ParamMaxDTLS, rec.MaxDTLS},
		{ParamGroupIsKEM, isKEM},
	}
}

// SigAlgDescriptor is the externally visible view of one signature
// composite. HashAlg is always empty: digest selection belongs to the
// handshake layer.
type SigAlgDescriptor struct {
	Name         string
	InternalName string
	Algorithm    string
	HashAlg      string
	OID          string
	Index        int
}

// Params resolves the descriptor against rec.
func (d SigAlgDescriptor) Params(rec SigAlgRecord) Params {
	return Params{
		{ParamSigAlgName, d.Name},
		{ParamSigAlgNameInternal, d.InternalName},
		{ParamSigAlgAlg, d.Algorithm},
		{ParamSigAlgHashAlg, d.HashAlg},
		{ParamSigAlgOID, d.OID},
		{ParamSigAlgCodePoint, rec.CodePoint},
		{ParamSigAlgSecurityBits, rec.SecurityBits},
		{ParamMinTLS, rec.MinTLS},
		{ParamMaxTLS, rec.MaxTLS},
		{ParamMinDTLS, rec.MinDTLS},
		{ParamMaxDTLS, rec.MaxDTLS},
	}
}
