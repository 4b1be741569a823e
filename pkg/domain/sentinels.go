package domain

// Sentinel node IDs returned by ComputeNext and understood by the driver.
// They never appear in the registry.
const (
	// RepeatNodeID signals that the action failed validation: the driver must
	// re-prompt the active node with an apology prefix and leave the session
	// unchanged.
	RepeatNodeID = "REPEAT"

	// HomeNodeID signals conversation termination: the driver closes the
	// active node and deletes the session.
	HomeNodeID = "HOME"
)

// Well-known session attribute keys. These are conventions, not contracts:
// nothing enforces who writes or reads them, which is exactly the loose
// coupling the attribute bag is for. Conversation files document per node
// which keys they touch.
const (
	// AttrFirstName is stamped by the driver when the session is created.
	AttrFirstName = "first_name"
	// AttrTopic is written by the topic prediction node.
	AttrTopic = "topic"
	// AttrPostalCode is written by the postal lookup node.
	AttrPostalCode = "postal_code"
	// AttrKommunName, AttrKommunLink and AttrKomvuxLink are written by the
	// postal lookup node after a successful municipality resolution.
	AttrKommunName = "kommun_name"
	AttrKommunLink = "kommun_link"
	AttrKomvuxLink = "komvux_link"
)
