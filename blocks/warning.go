package blocks

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode         WarningType = "unknown_node"
	WarningDroppedFeature      WarningType = "dropped_feature"
	WarningMalformedNode       WarningType = "malformed_node"
	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
