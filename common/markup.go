package common

// Attributes composed documents use to describe their own structure to
// measurement. Values of BlockAttr are BlockType names, elements sharing
// GroupAttr value belong to the same group, element carrying it is the group
// container.
const (
	BlockAttr = "data-block"
	GroupAttr = "data-group"
)
