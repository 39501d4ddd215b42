/*
Package session implements session access orchestration.

It serializes mutation per user, integrating an in-process lock map with an
optional distributed locker so that two near-simultaneous events for the
same user can never produce a lost update, across one instance or many.
*/
package session
