/*
Package domain contains the core domain models for the kompis engine.

It defines the fundamental entities of the conversation state machine: the
per-chat Session, the normalized inbound Message, the outbound Payload, and
the sentinel node IDs understood by the driver. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Session: Captures the runtime snapshot of a chat (current node, last sent
    message, attribute bag).
  - Message: A platform event translated into a normalized action value.
  - Payload: A structural representation of what the transport should send or
    edit (text plus inline keyboard).
*/
package domain
