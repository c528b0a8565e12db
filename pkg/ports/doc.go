/*
Package ports defines the driven ports (interfaces) for pathrace.

These interfaces decouple playback sessions from their storage backends.

# Key Interfaces

  - SessionStore: persists and loads playback sessions (request + cursor).
  - DistributedLocker: serialises access to one session across replicas.

RunSessionStoreContract is a reusable test suite every SessionStore
implementation should pass.
*/
package ports
