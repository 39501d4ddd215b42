/*
Package ports defines the driven ports (interfaces) for the nomibot core.

These interfaces decouple the game logic from external implementations,
allowing the dispatcher to work with different persistence backends and
messaging clients.

# Key Interfaces

  - SessionStore: Responsible for persisting session documents (get-or-create + merge).
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - Replier: Responsible for delivering reply messages to the platform.
*/
package ports
