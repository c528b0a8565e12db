/*
Package session implements playback sessions on top of a ports.SessionStore.

A session stores only its comparison request and cursor (step, speed,
status). The comparison result is recomputed from the request whenever a
session is opened by a process that does not hold it live, which is safe
because searches are deterministic.

Access to one session is serialised by a reference-counted local mutex and,
when configured, a ports.DistributedLocker shared by every replica.
*/
package session
