package style

// Producer is the render-time source of a referenced value. Resolution
// against live telemetry happens outside this package.
type Producer interface {
	OutputType() ValueType
}

// AssetProducer yields the file behind an asset.
type AssetProducer struct {
	AssetType AssetType
	Path      string
}

// OutputType implements Producer.
func (p AssetProducer) OutputType() ValueType {
	if p.AssetType == AssetFont {
		return ValueFont
	}
	return ValueImage
}

// VariableProducer yields the value computed by a variable's behavior.
type VariableProducer struct {
	Output   ValueType
	Behavior VariableBehavior
}

// OutputType implements Producer.
func (p VariableProducer) OutputType() ValueType {
	return p.Output
}
