/*
Package domain contains the core domain models for the nomibot game.

It defines the fundamental entities of the session state machine, such as
Phases, Choices, Sessions and Outcomes. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Phase: One node of the fixed scenario graph (prompt, choices, successor).
  - Session: A user's persisted progress through the phase graph.
  - Outcome: A structural representation of what happened on an advance.
  - Message: A platform-neutral reply payload (text, buttons, confirm, sticker).
  - InboundEvent: A decoded webhook event, tagged by kind.
*/
package domain
